package model

// Version is the release reported by --version and compared by --update.
const Version = "0.4.0"

// ProgramName names the binary, the config directory, and the GitHub repository.
const ProgramName = "column79"
