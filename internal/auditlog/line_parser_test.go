package auditlog

import (
	"strings"
	"testing"

	"github.com/Programator2/medusa-policy-mining/internal/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexDecode(t *testing.T) {
	// "/etc/passwd" in ascii hex.
	got, err := hexDecode("2f6574632f706173737764")
	require.NoError(t, err)
	assert.Equal(t, "/etc/passwd", got)
}

func TestParseLineTokenizesQuotedAndHexFields(t *testing.T) {
	line := `type=AVC msg=audit(1674000000.123:456): op=open dir=2f6574632f706173737764 mode=4 pid=100 ppid=1 uid=0 proctitle="sshd"`
	msg, err := parseLine(line)
	require.NoError(t, err)
	assert.Equal(t, "AVC", msg.msgType)
	assert.Equal(t, 456, msg.serial)
	assert.Equal(t, "/etc/passwd", msg.fields["dir"])
	assert.Equal(t, "sshd", msg.fields["proctitle"])
	assert.Equal(t, "open", msg.fields["op"])
}

func TestParseOpenGrantsReadWriteOnMayWriteMode(t *testing.T) {
	log := `type=AVC msg=audit(1674000000.123:1): op=open dir=2f746d70 mode=6 pid=10 ppid=1 uid=0 proctitle="sshd"` + "\n"
	entries, err := NewLineParser().Parse(strings.NewReader(log))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/tmp", entries[0].Path)
	assert.True(t, entries[0].Permission.Has(access.Read))
	assert.True(t, entries[0].Permission.Has(access.Write))
}

func TestParseOpenReadOnlyWithoutMayWrite(t *testing.T) {
	log := `type=AVC msg=audit(1674000000.123:1): op=open dir=2f746d70 mode=1 pid=10 ppid=1 uid=0 proctitle="sshd"` + "\n"
	entries, err := NewLineParser().Parse(strings.NewReader(log))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Permission.Has(access.Read))
	assert.False(t, entries[0].Permission.Has(access.Write))
}

func TestParseExecTracksDomainForDescendantPid(t *testing.T) {
	log := strings.Join([]string{
		`type=AVC msg=audit(1674000000.000:1): op=exec filename=2f7573722f7362696e2f737368642e62696e pid=1 ppid=0 uid=0 proctitle="sshd"`,
		`type=AVC msg=audit(1674000000.100:2): op=open dir=2f6574632f706173737764 mode=4 pid=2 ppid=1 uid=0 proctitle="sshd"`,
	}, "\n") + "\n"

	entries, err := NewLineParser().Parse(strings.NewReader(log))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// the second entry's pid (2) execs nothing itself; it inherits the
	// domain of its parent, pid 1, which execed /usr/sbin/sshd.bin in the
	// first message.
	assert.Equal(t, "/etc/passwd", entries[1].Path)
	require.Len(t, entries[1].Domain, 1)
	assert.Equal(t, "/usr/sbin/sshd.bin", entries[1].Domain[0].Binary)
}

func TestParseUnlinkJoinsDirAndName(t *testing.T) {
	log := `type=AVC msg=audit(1674000000.123:1): op=unlink dir=2f746d70 name=666f6f pid=1 ppid=0 uid=0 proctitle="rm"` + "\n"
	entries, err := NewLineParser().Parse(strings.NewReader(log))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/tmp/foo", entries[0].Path)
	assert.True(t, entries[0].Permission.Has(access.Read))
	assert.True(t, entries[0].Permission.Has(access.Write))
}

func TestParseIgnoresUnrelatedMessageTypes(t *testing.T) {
	log := strings.Join([]string{
		`type=NETFILTER_CFG msg=audit(1674000000.000:9): table=filter`,
		`type=AVC msg=audit(1674000000.100:10): op=exec filename=2f62696e2f6c73 pid=5 ppid=1 uid=0 proctitle="ls"`,
	}, "\n") + "\n"

	entries, err := NewLineParser().Parse(strings.NewReader(log))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/bin/ls", entries[0].Path)
}
