package config

// Base application details
const AppName = "tideweave"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "tideweave.log"

// Editor defaults
const DefaultTabWidth = 4
const DefaultWrapWidth = 0 // 0 disables soft wrapping
const DefaultMaxHistory = 500
const DefaultScrollOff = 3
const SystemClipboard = true

// UI Layout
const StatusBarHeight = 1
