package correlator

import "fmt"

// Kind identifies a request category admitting one in-flight request.
type Kind int

const (
	Authorization Kind = iota
	Share
	ShareToContact
	OpenRecord

	kindCount
)

var kindNames = [kindCount]string{
	Authorization:  "authorization",
	Share:          "share",
	ShareToContact: "shareToContact",
	OpenRecord:     "openRecord",
}

// Kinds returns all request kinds
func Kinds() []Kind {
	return []Kind{Authorization, Share, ShareToContact, OpenRecord}
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses a kind name as used in callback payloads.
func ParseKind(name string) (Kind, error) {
	for i, candidate := range kindNames {
		if candidate == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown request kind: %q", name)
}
