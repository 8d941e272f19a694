package wire

import "fmt"

// CodecName is the gRPC content-subtype of [RawCodec].
const CodecName = "appsync-raw"

// Relay gRPC service. Every method takes and returns a raw frame.
const (
	RelayService         = "appsync.Relay"
	MethodSubmitQuery    = "/appsync.Relay/SubmitQuery"
	MethodRegisterDevice = "/appsync.Relay/RegisterDevice"
	MethodDownloadBlob   = "/appsync.Relay/DownloadBlob"

	// MetadataNamespace carries the query namespace of SubmitQuery.
	MetadataNamespace = "x-namespace"
)

// RawCodec is a gRPC codec that moves already encoded frames through the
// channel untouched. Messages must be *[]byte (or []byte when sending).
type RawCodec struct{}

func (RawCodec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case *[]byte:
		if m == nil {
			return nil, nil
		}
		return *m, nil
	case []byte:
		return m, nil
	default:
		return nil, fmt.Errorf("%w: raw codec cannot marshal %T", ErrMalformed, v)
	}
}

func (RawCodec) Unmarshal(data []byte, v any) error {
	dst, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("%w: raw codec cannot unmarshal into %T", ErrMalformed, v)
	}
	*dst = append((*dst)[:0], data...)
	return nil
}

func (RawCodec) Name() string {
	return CodecName
}
