package verdict

// Version is the library and CLI release version.
const Version = "0.3.0"
