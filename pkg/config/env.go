package config

import "strings"

// envReplacer maps dashed keys to LONGREAD_UNITS_PER_ROW style variables.
var envReplacer = strings.NewReplacer("-", "_")
