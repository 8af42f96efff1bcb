// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainFromResolvConf(t *testing.T) {
	tests := []struct {
		name string
		conf string
		want string
	}{
		{
			name: "domain directive",
			conf: "nameserver 10.0.0.1\ndomain corp.example.org\n",
			want: "corp.example.org",
		},
		{
			name: "search list is not membership",
			conf: "search us-west-2.compute.internal\nnameserver 10.0.0.1\n",
			want: "",
		},
		{
			name: "domain wins over search",
			conf: "search a.example.org\ndomain b.example.org\n",
			want: "b.example.org",
		},
		{
			name: "comments ignored",
			conf: "# domain commented.example.org\nnameserver 1.1.1.1\n",
			want: "",
		},
		{
			name: "placeholder ignored",
			conf: "domain localdomain\n",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domainFromResolvConf(strings.NewReader(tt.conf)))
		})
	}
}

func TestFirstDomain(t *testing.T) {
	probes := []Probe{
		func() string { return "" },
		func() string { return "(none)" },
		func() string { return "corp.example.org." },
		func() string { t.Fatal("later probes must not run"); return "" },
	}
	assert.Equal(t, "corp.example.org", FirstDomain(probes))
	assert.Empty(t, FirstDomain(nil))
}

func TestResolvConfProbe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resolv.conf")
	if err := os.WriteFile(path, []byte("domain lab.example.net\n"), 0644); err != nil {
		t.Fatal(err)
	}
	old := resolvConfPath
	resolvConfPath = path
	t.Cleanup(func() { resolvConfPath = old })

	assert.Equal(t, "lab.example.net", resolvConfProbe())

	resolvConfPath = filepath.Join(t.TempDir(), "absent")
	assert.Empty(t, resolvConfProbe())
}

func TestEnvProbe(t *testing.T) {
	t.Setenv("USERDNSDOMAIN", "CORP.EXAMPLE.ORG")
	assert.Equal(t, "CORP.EXAMPLE.ORG", envProbe())

	ClearDomainCache()
	t.Cleanup(ClearDomainCache)
	assert.Equal(t, "CORP.EXAMPLE.ORG", CurrentDomain())
}

func TestCurrentDomain_NotJoined(t *testing.T) {
	if normalize(platformDomain()) != "" {
		t.Skip("host is joined to a domain")
	}
	path := filepath.Join(t.TempDir(), "resolv.conf")
	if err := os.WriteFile(path, []byte("search us-west-2.compute.internal\nnameserver 10.0.0.2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	old := resolvConfPath
	resolvConfPath = path
	t.Cleanup(func() { resolvConfPath = old })
	t.Setenv("USERDNSDOMAIN", "")

	ClearDomainCache()
	t.Cleanup(ClearDomainCache)
	assert.Empty(t, CurrentDomain())
}
