package seccontext

import "fmt"

// ErrUnknownService is returned when a MemorySource has no table entry
// for the requested service name.
var ErrUnknownService = fmt.Errorf("seccontext: unknown service")

// MemorySource serves contexts from a fixed in-memory table, used both
// for the built-in well-known-service tables and in tests.
type MemorySource struct {
	table map[string][]string
}

// NewMemorySource wraps a service-name -> context-tuple table.
func NewMemorySource(table map[string][]string) *MemorySource {
	return &MemorySource{table: table}
}

// ContextsFor implements Source.
func (s *MemorySource) ContextsFor(service string) ([]string, error) {
	contexts, ok := s.table[service]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, service)
	}
	return contexts, nil
}

// subjectContexts is the hard-coded SELinux subject (process) context
// table for well-known services, ported from
// original_source/mpm/contexts/subjects.py.
var subjectContexts = map[string][]string{
	"postgres": {"system_u:system_r:postgresql_t:s0"},
	"sshd":     {"system_u:system_r:sshd_t:s0-s0:c0.c1023"},
	"postfix": {
		"system_u:system_r:postfix_master_t:s0",
		"system_u:system_r:postfix_pickup_t:s0",
		"system_u:system_r:postfix_qmgr_t:s0",
	},
	"apache": {"system_u:system_r:httpd_t:s0"},
}

// objectContexts is the hard-coded SELinux object (file) type table for
// well-known services, ported from
// original_source/mpm/contexts/objects.py.
var objectContexts = map[string][]string{
	"postgres": {
		"postgresql_etc_t",
		"postgresql_initrc_exec_t",
		"postgresql_exec_t",
		"postgresql_db_t",
		"postgresql_unit_file_t",
		"postgresql_log_t",
		"postgresql_var_run_t",
	},
	"sshd": {
		"sshd_exec_t",
		"sshd_key_t",
		"sshd_keygen_exec_t",
		"sshd_keygen_unit_file_t",
		"sshd_unit_file_t",
	},
	"postfix": {
		"postfix_bounce_exec_t",
		"postfix_cleanup_exec_t",
		"postfix_data_t",
		"postfix_etc_t",
		"postfix_exec_t",
		"postfix_local_exec_t",
		"postfix_map_exec_t",
		"postfix_master_exec_t",
		"postfix_pickup_exec_t",
		"postfix_pipe_exec_t",
		"postfix_postdrop_exec_t",
		"postfix_postqueue_exec_t",
		"postfix_private_t",
		"postfix_public_t",
		"postfix_qmgr_exec_t",
		"postfix_showq_exec_t",
		"postfix_smtp_exec_t",
		"postfix_smtpd_exec_t",
		"postfix_spool_bounce_t",
		"postfix_spool_t",
		"postfix_virtual_exec_t",
	},
	"apache": {
		"httpd_cache_t",
		"httpd_config_t",
		"httpd_exec_t",
		"httpd_log",
		"httpd_modules_t",
		"httpd_rotatelogs_exec",
		"httpd_suexec_exec_t",
		"httpd_sys_content_",
		"httpd_sys_script_exec_t",
		"httpd_unit_file_t",
		"httpd_var_lib_t",
		"httpd_var_run_t",
	},
}

// BuiltinSubjects returns a Source serving the hard-coded subject
// context table for postgres, sshd, postfix, and apache.
func BuiltinSubjects() *MemorySource {
	return NewMemorySource(subjectContexts)
}

// BuiltinObjects returns a Source serving the hard-coded object context
// table for postgres, sshd, postfix, and apache.
func BuiltinObjects() *MemorySource {
	return NewMemorySource(objectContexts)
}
