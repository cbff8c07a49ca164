package testutil

import (
	"fmt"

	"carbonledger/pkg/domain"
)

// Addresses used across ledger tests.
var (
	Admin        = domain.Address("0x00000000000000000000000000000000000000ad")
	Issuer       = domain.Address("0x1000000000000000000000000000000000000001")
	Verifier     = domain.Address("0x2000000000000000000000000000000000000002")
	Seller       = domain.Address("0x3000000000000000000000000000000000000003")
	Buyer        = domain.Address("0x4000000000000000000000000000000000000004")
	FeeCollector = domain.Address("0x5000000000000000000000000000000000000005")
	CertifierA   = domain.Address("0xa000000000000000000000000000000000000000")
	CertifierB   = domain.Address("0xb000000000000000000000000000000000000000")
	Stranger     = domain.Address("0xc000000000000000000000000000000000000000")
)

// AddressN returns a distinct deterministic address for index n.
func AddressN(n int) domain.Address {
	return domain.Address(fmt.Sprintf("0x%040x", n+1))
}
