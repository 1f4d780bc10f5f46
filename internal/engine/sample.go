package engine

import _ "embed"

// sampleVCF is the demo contact file installed when nothing is configured.
//
//go:embed sample-contacts.vcf
var sampleVCF []byte
