package orgfile

var knownSignatures = [...]string{
	"Org-01",
	"Org-02",
	"Org-03",
}

func isKnownSignature(sig [6]byte) bool {
	for _, s := range knownSignatures {
		if string(sig[:]) == s {
			return true
		}
	}
	return false
}

func totalEvents(counts *[NumInstruments]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
