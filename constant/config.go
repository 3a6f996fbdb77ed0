package constant

// DefaultConfigPath is where the license config file is read from when no
// explicit path is given
const DefaultConfigPath = "config/config.json"
