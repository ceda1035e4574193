package conversation

import "time"

// timeNow is a package-level var to allow test injection.
var timeNow = time.Now

const timeLayout = time.RFC3339
