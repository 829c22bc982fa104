package access

import "github.com/Programator2/medusa-policy-mining/internal/domain"

// Access is one piece of evidence: a uid executing under a given domain
// exercised a set of permissions against a path. It is immutable after
// construction — there are no setters, so every field is fixed for the
// lifetime of the value.
type Access struct {
	Permissions Permission
	UID         int
	Domain      domain.Domain
	// Comm is the proctitle recorded alongside this access, kept for
	// display only. It never participates in equality or hashing.
	Comm string
}

// New constructs an Access. comm is optional display metadata.
func New(perm Permission, uid int, dom domain.Domain, comm string) Access {
	return Access{Permissions: perm, UID: uid, Domain: dom, Comm: comm}
}

// Key identifies an Access by (uid, domain) — the pair on which accesses
// merge. Comm and Permissions are deliberately excluded.
type Key struct {
	UID       int
	DomainKey string
}

// KeyOf returns the merge key for a.
func KeyOf(a Access) Key {
	return Key{UID: a.UID, DomainKey: a.Domain.Key()}
}

// Set is a collection of Access values with at most one entry per
// (uid, domain) pair — invariant I3 is a representation property of this
// type rather than something callers must check.
type Set map[Key]Access

// NewSet returns an empty Set.
func NewSet() Set {
	return make(Set)
}

// Add merges a into the set: if an entry already exists for a's (uid,
// domain), the two permission sets are unioned into a freshly constructed
// Access (never mutated in place); otherwise a is inserted as-is.
func (s Set) Add(a Access) {
	k := KeyOf(a)
	if existing, ok := s[k]; ok {
		comm := existing.Comm
		if comm == "" {
			comm = a.Comm
		}
		s[k] = New(existing.Permissions.Union(a.Permissions), a.UID, a.Domain, comm)
		return
	}
	s[k] = a
}

// AddAll merges every access in other into s.
func (s Set) AddAll(other Set) {
	for _, a := range other {
		s.Add(a)
	}
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// HasDomain returns the union of the permissions of every access in the
// set whose domain Key matches one of doms (zero when none matches).
func (s Set) HasDomain(doms []domain.Domain) Permission {
	var perm Permission
	for _, a := range s {
		for _, d := range doms {
			if a.Domain.Key() == d.Key() {
				perm = perm.Union(a.Permissions)
				break
			}
		}
	}
	return perm
}
