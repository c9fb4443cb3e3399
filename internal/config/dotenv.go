package config

import "promptbox/internal/utils"

// loadDotEnv is a var so tests can stub it out.
var loadDotEnv = utils.LoadEnv
