package strategy

import _ "embed"

//go:embed token_bucket.lua
var tokenBucketLua string

//go:embed leaky_bucket.lua
var leakyBucketLua string

//go:embed fixed_window.lua
var fixedWindowLua string

//go:embed sliding_window_log.lua
var slidingWindowLogLua string

//go:embed sliding_window_counter.lua
var slidingWindowCounterLua string
