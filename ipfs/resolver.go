package ipfs

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	shell "github.com/ipfs/go-ipfs-api"
)

const (
	hashLength = 46
	hashPrefix = "Qm"
)

// Contact holds the identity block embedded in bounty and fulfillment
// metadata (the "issuer" or "fulfiller" object).
type Contact struct {
	Name    string
	Email   string
	Github  string
	Address string
}

// Fields is the fixed set of known metadata fields plus the open meta bag
// carried by bounty and fulfillment content documents.
type Fields struct {
	Title           string
	Description     string
	Categories      []string
	SourceFileName  string
	SourceFileHash  string
	SourceDirHash   string
	WebReferenceURL string
	Contact         Contact
	UID             string
	Meta            map[string]interface{}
	Hash            string
	Raw             string
}

// Result distinguishes a successfully resolved document from a degraded
// one. A degraded result carries empty-defaulted fields and the reason, so
// the caller can log without the resolver owning a logging side channel.
type Result struct {
	Fields   Fields
	Degraded bool
	Reason   string
}

type catter interface {
	Cat(path string) (io.ReadCloser, error)
}

// Resolver fetches and parses content-addressed JSON metadata.
type Resolver struct {
	sh catter
}

// NewResolver returns a resolver backed by the ipfs api at apiAddr.
func NewResolver(apiAddr string) *Resolver {
	return &Resolver{sh: shell.NewShell(apiAddr)}
}

func newResolverWithCatter(c catter) *Resolver {
	return &Resolver{sh: c}
}

// Resolve fetches the document for hash and plucks the known field set.
// Malformed hashes, unreachable content and broken JSON all degrade to
// empty defaults instead of failing the caller; an entity must remain
// creatable with unreachable metadata.
func (r *Resolver) Resolve(hash string) Result {
	if len(hash) != hashLength || hash[:2] != hashPrefix {
		return degraded(hash, fmt.Sprintf("malformed content hash %q", hash))
	}

	rc, err := r.sh.Cat(hash)
	if err != nil {
		return degraded(hash, fmt.Sprintf("fetch content: %v", err))
	}

	defer rc.Close()
	raw, err := ioutil.ReadAll(rc)
	if err != nil {
		return degraded(hash, fmt.Sprintf("read content: %v", err))
	}

	doc := map[string]interface{}{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return degraded(hash, fmt.Sprintf("decode content json: %v", err))
	}

	meta, _ := doc["meta"].(map[string]interface{})
	if payload, ok := doc["payload"].(map[string]interface{}); ok {
		doc = payload
	}

	f := Fields{
		Title:           str(doc, "title"),
		Description:     str(doc, "description"),
		SourceFileName:  str(doc, "sourceFileName"),
		SourceFileHash:  str(doc, "sourceFileHash"),
		SourceDirHash:   str(doc, "sourceDirectoryHash"),
		WebReferenceURL: str(doc, "webReferenceUrl"),
		Meta:            meta,
		Hash:            hash,
		Raw:             string(raw),
	}

	if cats, ok := doc["categories"].([]interface{}); ok {
		for _, c := range cats {
			if s, ok := c.(string); ok {
				f.Categories = append(f.Categories, s)
			}
		}
	}

	f.Contact = contact(doc, "issuer")
	if f.Contact == (Contact{}) {
		f.Contact = contact(doc, "fulfiller")
	}
	if f.Contact.Email == "" {
		f.Contact.Email = str(doc, "contact")
	}

	f.UID = str(meta, "uid")
	return Result{Fields: f}
}

func degraded(hash, reason string) Result {
	if hash == "" {
		hash = "invalid"
	}

	return Result{
		Fields:   Fields{Hash: hash, Raw: "{}"},
		Degraded: true,
		Reason:   reason,
	}
}

func contact(doc map[string]interface{}, key string) Contact {
	// Some legacy documents carry the identity block as a bare string;
	// those are treated as absent.
	block, ok := doc[key].(map[string]interface{})
	if !ok {
		return Contact{}
	}

	return Contact{
		Name:    str(block, "name"),
		Email:   str(block, "email"),
		Github:  str(block, "githubUsername"),
		Address: str(block, "address"),
	}
}

func str(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}

	s, _ := m[key].(string)
	return s
}
