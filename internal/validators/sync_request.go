package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-app-state-sync/models"
)

// Field name constants used to scope validation of sync queries.
const (
	// FieldCollections targets the list of collection requests of a query.
	FieldCollections = "collections"

	// FieldName targets the collection name of a single request.
	FieldName = "name"

	// FieldPatch targets the optional patch of a collection request.
	FieldPatch = "patch"

	// FieldPatchVersion requires the patch version to be exactly one above
	// the version the client says it has.
	FieldPatchVersion = "patch_version"

	// FieldMACs targets the patch and snapshot MACs of a patch.
	FieldMACs = "macs"

	// FieldKeyID targets the key id of a patch.
	FieldKeyID = "key_id"

	// FieldMutations targets the inline mutations of a patch.
	FieldMutations = "mutations"
)

const (
	indexMACSize = 32
	// IV, at least one cipher block, value MAC.
	minValueBlobSize = 16 + 16 + 32
)

// SyncRequestValidator checks the structure of sync queries before the
// relay touches the log. It never looks inside encrypted values.
type SyncRequestValidator struct{}

func NewSyncRequestValidator() Validator {
	return &SyncRequestValidator{}
}

// Validate accepts SyncRequest, CollectionRequest, Patch and SyncdMutation,
// by value or by pointer.
func (v *SyncRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncRequest:
		return v.validateSyncRequest(ctx, value, fields...)
	case *models.SyncRequest:
		return v.validateSyncRequest(ctx, *value, fields...)

	case models.CollectionRequest:
		return v.validateCollectionRequest(ctx, value, fields...)
	case *models.CollectionRequest:
		return v.validateCollectionRequest(ctx, *value, fields...)

	case models.SyncdMutation:
		return v.validateMutation(value)
	case *models.SyncdMutation:
		return v.validateMutation(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncRequestValidator) validateSyncRequest(ctx context.Context, request models.SyncRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCollections}
	}

	for _, f := range fields {
		switch f {
		case FieldCollections:
			if len(request.Collections) == 0 {
				return ErrEmptyCollections
			}
			seen := make(map[models.Collection]struct{}, len(request.Collections))
			for i, c := range request.Collections {
				if _, dup := seen[c.Name]; dup {
					return fmt.Errorf("%w: %s", ErrDuplicateCollection, c.Name)
				}
				seen[c.Name] = struct{}{}

				if err := v.validateCollectionRequest(ctx, c); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateCollectionRequest checks one collection entry. A request without
// a patch is a plain pull and only needs a known name.
func (v *SyncRequestValidator) validateCollectionRequest(ctx context.Context, request models.CollectionRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPatch}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if !request.Name.Valid() {
				return fmt.Errorf("%w: %q", ErrUnknownCollection, request.Name)
			}
		case FieldPatch:
			if request.Patch == nil {
				continue
			}
			if err := v.validatePatch(request); err != nil {
				return fmt.Errorf("%s: %w", request.Name, err)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *SyncRequestValidator) validatePatch(request models.CollectionRequest) error {
	patch := request.Patch

	for _, f := range []string{FieldPatchVersion, FieldMACs, FieldKeyID, FieldMutations} {
		switch f {
		case FieldPatchVersion:
			if patch.GetVersion() != request.Version+1 {
				return ErrInvalidPatchVersion
			}
		case FieldMACs:
			if len(patch.PatchMAC) == 0 {
				return ErrMissingPatchMAC
			}
			if len(patch.SnapshotMAC) == 0 {
				return ErrMissingSnapshotMAC
			}
		case FieldKeyID:
			if len(patch.KeyID) == 0 {
				return ErrMissingKeyID
			}
		case FieldMutations:
			// the relay offloads mutations itself, pushes are always inline
			if patch.ExternalMutations != nil {
				return ErrExternalMutations
			}
			if len(patch.Mutations) == 0 {
				return ErrEmptyPatch
			}
			for i, m := range patch.Mutations {
				if err := v.validateMutation(m); err != nil {
					return fmt.Errorf("mutation %d: %w", i, err)
				}
			}
		}
	}

	return nil
}

func (v *SyncRequestValidator) validateMutation(m models.SyncdMutation) error {
	if m.Operation != models.OperationSet && m.Operation != models.OperationRemove {
		return ErrInvalidOperation
	}
	if len(m.Record.IndexMAC) != indexMACSize {
		return ErrInvalidIndexMAC
	}
	if len(m.Record.ValueBlob) < minValueBlobSize {
		return ErrInvalidValueBlob
	}
	if len(m.Record.KeyID) == 0 {
		return ErrMissingKeyID
	}
	return nil
}
