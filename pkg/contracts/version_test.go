package contracts

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	info := Build()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, APIVersion, info.APIVersion)
	assert.Equal(t, DataFormatVersion, info.DataFormat)
}

func TestBuildInfo_String(t *testing.T) {
	s := Build().String()

	assert.True(t, strings.HasPrefix(s, "procurepulse v"+Version+" "), s)
	assert.Contains(t, s, runtime.GOOS+"/"+runtime.GOARCH)
}
