package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyCollections    = errors.New("collections list cannot be empty")
	ErrUnknownCollection   = errors.New("unknown collection")
	ErrDuplicateCollection = errors.New("collection requested twice")
	ErrInvalidPatchVersion = errors.New("patch version must follow the collection version")
	ErrMissingPatchMAC     = errors.New("patch MAC is required")
	ErrMissingSnapshotMAC  = errors.New("snapshot MAC is required")
	ErrMissingKeyID        = errors.New("key id is required")
	ErrEmptyPatch          = errors.New("patch carries no mutations")
	ErrExternalMutations   = errors.New("pushed patch must carry inline mutations")
	ErrInvalidIndexMAC     = errors.New("invalid index MAC")
	ErrInvalidValueBlob    = errors.New("invalid value blob")
	ErrInvalidOperation    = errors.New("invalid mutation operation")
)
