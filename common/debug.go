package common

// Set this during development to get informational logging on stderr without
// having to pass -v everywhere.
const DEBUG = false
