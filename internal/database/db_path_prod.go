//go:build prod

package database

import (
	"log"

	"github.com/adrg/xdg"
)

// GetDefaultDBPath returns the database path for production mode.
// In production, the database lives under the user's XDG data directory.
func GetDefaultDBPath() string {
	dbPath, err := xdg.DataFile("promptbox/promptbox.db")
	if err != nil {
		log.Printf("Warning: Failed to resolve data dir: %v. Using fallback.", err)
		return "promptbox.db"
	}
	return dbPath
}

func IsDevelopment() bool {
	return false
}
