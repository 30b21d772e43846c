package runtime

// Rent parameters matching the mainnet defaults: accounts holding two
// years' worth of rent up front are exempt from collection.
const (
	rentLamportsPerByteYear = 3480
	rentExemptionYears      = 2

	// accountStorageOverhead is the per-account metadata the host charges
	// for in addition to the data itself.
	accountStorageOverhead = 128
)

// MinimumBalance returns the rent-exemption threshold for an account of
// the given data size.
func MinimumBalance(dataLen int) uint64 {
	return uint64(accountStorageOverhead+dataLen) * rentLamportsPerByteYear * rentExemptionYears
}
