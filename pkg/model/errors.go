package model

import "errors"

var (
	ErrEmptyTable            = errors.New("table has no header row")
	ErrBadCell               = errors.New("cell is not a number")
	ErrNegativeValue         = errors.New("abundance values must be non-negative")
	ErrDuplicateRow          = errors.New("duplicate row label")
	ErrDuplicateColumn       = errors.New("duplicate column label")
	ErrRaggedRow             = errors.New("row has wrong number of fields")
	ErrUnknownColumn         = errors.New("unknown column")
	ErrBadPageSize           = errors.New("page size must be positive")
	ErrSameSample            = errors.New("please select two different columns")
	ErrUnknownMetadataFormat = errors.New("metadata file must be .tsv or .csv")
	ErrUnknownRank           = errors.New("unknown taxonomic level")
)
