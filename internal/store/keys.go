package store

import "strings"

// Key namespaces used by the E2 Manager and the resource status manager.
const (
	E2ManagerNamespace = "e2Manager"
	RsmNamespace       = "rsm"
)

// Fixed keys and publish channels.
var (
	E2TAddressesKey            = Key(E2ManagerNamespace, "E2TAddresses")
	GeneralConfigurationKey    = Key(E2ManagerNamespace, "GENERAL")
	RsmGeneralConfigurationKey = Key(RsmNamespace, "CFG", "GENERAL", "v1.0.0")

	RanManipulationChannel           = Key(E2ManagerNamespace, "RAN_MANIPULATION")
	RanConnectionStatusChangeChannel = Key(E2ManagerNamespace, "RAN_CONNECTION_STATUS_CHANGE")
)

// Key builds a key following the "{namespace},Field[:Qualifier...]" convention.
func Key(namespace, field string, qualifiers ...string) string {
	var b strings.Builder
	b.WriteString("{")
	b.WriteString(namespace)
	b.WriteString("},")
	b.WriteString(field)
	for _, q := range qualifiers {
		b.WriteString(":")
		b.WriteString(q)
	}
	return b.String()
}

// E2TInstanceKey returns the key of the E2T instance record for an address.
// The address itself contains a colon and is kept verbatim.
func E2TInstanceKey(address string) string {
	return Key(E2ManagerNamespace, "E2TInstance", address)
}

// RsmRanKey returns the key of the resource status manager record for a RAN.
func RsmRanKey(ranName string) string {
	return Key(RsmNamespace, "RAN", ranName)
}

// LoadInformationKey returns the key of the load information record for a RAN.
func LoadInformationKey(ranName string) string {
	return Key(E2ManagerNamespace, "LOAD", ranName)
}
