package rmstools

import (
	"github.com/tphakala/rmsmeter-tools/internal/lut"
	"github.com/tphakala/rmsmeter-tools/internal/record"
)

// Table defaults
const (
	DefaultTableSize = lut.DefaultSize // entries per period in the firmware table
	DefaultTableName = lut.DefaultName
)

// Record geometry
const (
	RecordMinLen      = record.MinLen     // shortest line DecodeHex accepts
	ReadingsPerRecord = record.FieldCount // readings per record, both channels
)
