package models

// AssetManifest describes the offline cache the UI shell installs.
type AssetManifest struct {
	CacheName  string   `json:"cacheName"`
	AppVersion string   `json:"appVersion"`
	Precache   []string `json:"precache"`
}
