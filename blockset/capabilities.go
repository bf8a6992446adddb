package blockset

// Capabilities describes the optional response fields and behaviors the
// remote data service is asked to provide. Values compose with bitwise OR
// and are immutable once a Client is configured with them.
type Capabilities uint32

const (
	// CapTransferStatusRevert: transfer JSON may carry a status of "revert".
	CapTransferStatusRevert Capabilities = 1 << 0
	// CapTransferStatusReject: transfer JSON may carry a status of "reject".
	CapTransferStatusReject Capabilities = 1 << 1
)

// CapabilitiesV2020_03_21 is the 2020-03-21 protocol revision: 'revert' and 'reject'.
const CapabilitiesV2020_03_21 = CapTransferStatusRevert | CapTransferStatusReject

// CurrentCapabilities is the revision negotiated by default.
const CurrentCapabilities = CapabilitiesV2020_03_21

// ComposeCapabilities unions the given capability sets.
func ComposeCapabilities(caps ...Capabilities) Capabilities {
	var composed Capabilities
	for _, c := range caps {
		composed |= c
	}
	return composed
}

// Has reports whether subset is contained in c.
func (c Capabilities) Has(subset Capabilities) bool {
	return subset == subset&c
}

// VersionDescription returns the Accept header value negotiating c.
// Only exact, known revisions map to a versioned media type; any other
// combination of flags falls back to plain JSON. This is a fixed lookup,
// not capability arithmetic.
func (c Capabilities) VersionDescription() string {
	switch c {
	case CapabilitiesV2020_03_21:
		return "application/vnd.blockset.V_2020-03-21+json"
	default:
		return "application/json"
	}
}
