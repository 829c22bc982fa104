package auditlog

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/Programator2/medusa-policy-mining/internal/domain"
)

const (
	mayWrite = 0x2
)

// LineParser implements Parser over the Medusa AVC audit-log text
// format, grounded on the teacher's pkg/lpc.LineParser tokenizer and
// original_source/parser.py's assign_permissions grammar.
type LineParser struct{}

// NewLineParser returns a ready-to-use LineParser.
func NewLineParser() *LineParser {
	return &LineParser{}
}

// Parse reads every line of r, keeping only AVC/SYSCALL/PROCTITLE
// messages, groups them by serial number (preserving first-seen order),
// and converts each group's AVC message(s) into zero or more Entry
// values, tracking per-pid exec domains as it goes.
func (p *LineParser) Parse(r io.Reader) ([]Entry, error) {
	var order []int
	groups := make(map[int][]rawMessage)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		msg, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		if msg.msgType != "AVC" && msg.msgType != "SYSCALL" && msg.msgType != "PROCTITLE" {
			continue
		}
		if _, seen := groups[msg.serial]; !seen {
			order = append(order, msg.serial)
		}
		groups[msg.serial] = append(groups[msg.serial], msg)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("auditlog: %w", err)
	}

	domains := make(map[int]domain.Domain)
	var entries []Entry
	for _, serial := range order {
		es, err := assignPermissions(groups[serial], domains)
		if err != nil {
			return nil, err
		}
		entries = append(entries, es...)
	}
	return entries, nil
}

func searchField(msgs []rawMessage, key string) string {
	for _, m := range msgs {
		if v, ok := m.fields[key]; ok {
			return v
		}
	}
	return ""
}

func searchFieldInt(msgs []rawMessage, key string) int {
	for _, m := range msgs {
		if v, ok := m.getInt(key); ok {
			return v
		}
	}
	return 0
}

type pathAccess struct {
	path string
	perm access.Permission
}

// assignPermissions mirrors the original's assign_permissions: for the
// leading run of AVC-typed messages in one serial group, dispatch on the
// operation to decide which path(s) were touched with which permission.
func assignPermissions(msgs []rawMessage, domains map[int]domain.Domain) ([]Entry, error) {
	proctitle := searchField(msgs, "proctitle")
	uid := searchFieldInt(msgs, "uid")
	ppid := searchFieldInt(msgs, "ppid")

	var entries []Entry
	for _, m := range msgs {
		if m.msgType != "AVC" {
			break
		}
		op := m.fields["op"]
		accesses, err := pathAccessesForOp(op, m)
		if err != nil {
			return nil, err
		}
		pid, _ := m.getInt("pid")

		// A pid not yet seen inherits its parent's current domain: it is
		// still running under whatever the parent last exec'd until it
		// execs something of its own.
		if _, ok := domains[pid]; !ok {
			domains[pid] = cloneDomain(domains[ppid])
		}
		dom := domains[pid]

		for _, a := range accesses {
			entries = append(entries, Entry{
				Proctitle:  proctitle,
				Path:       a.path,
				Permission: a.perm,
				UID:        uid,
				PID:        pid,
				PPID:       ppid,
				Operation:  op,
				Domain:     dom,
			})
		}

		if op == "exec" {
			next := append(cloneDomain(domains[ppid]), domain.Step{Binary: m.fields["filename"], UID: uid})
			domains[pid] = next
		}
	}
	return entries, nil
}

func cloneDomain(d domain.Domain) domain.Domain {
	out := make(domain.Domain, len(d))
	copy(out, d)
	return out
}

func pathAccessesForOp(op string, m rawMessage) ([]pathAccess, error) {
	rw := access.Read | access.Write
	switch op {
	case "unlink", "rmdir":
		return []pathAccess{{path: m.fields["dir"] + "/" + m.fields["name"], perm: rw}}, nil
	case "mkdir", "mknod", "truncate", "symlink", "chmod", "dir":
		return []pathAccess{{path: m.fields["dir"], perm: rw}}, nil
	case "link":
		return []pathAccess{
			{path: m.fields["dir"], perm: rw},
			{path: m.fields["old_dir"], perm: rw},
		}, nil
	case "rename":
		return []pathAccess{
			{path: m.fields["old_dir"] + "/" + m.fields["old_name"], perm: rw},
			{path: m.fields["new_dir"], perm: rw},
		}, nil
	case "chown", "path":
		return []pathAccess{{path: m.fields["path"], perm: rw}}, nil
	case "exec":
		return []pathAccess{{path: m.fields["filename"], perm: access.Read}}, nil
	case "open":
		mode, _ := m.getInt("mode")
		perm := access.Read
		if mode&mayWrite != 0 {
			perm |= access.Write
		}
		return []pathAccess{{path: m.fields["dir"], perm: perm}}, nil
	default:
		return nil, fmt.Errorf("auditlog: unrecognized operation %q", op)
	}
}
