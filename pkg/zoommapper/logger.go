package zoommapper

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// zmLog is the sub-logger for the zoommapper package, carrying the
// module=zoommapper field on every event
var zmLog zerolog.Logger = log.With().Str("module", "zoommapper").Logger()
