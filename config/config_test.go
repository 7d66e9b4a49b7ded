package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
is_debug: true
listen:
  port: "8088"
gateway:
  endpoint_base: "https://test2pay.ghl.com/IPGSG/Payment.aspx"
  service_id: "ABC"
  timeout: 15s
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	conf, err := GetConfig(path)
	require.NoError(t, err)
	require.NotNil(t, conf)

	assert.True(t, conf.IsDebug)
	assert.Equal(t, "8088", conf.Listen.Port)
	assert.Equal(t, "0.0.0.0", conf.Listen.BindIP)
	assert.Equal(t, "https://test2pay.ghl.com/IPGSG/Payment.aspx", conf.Gateway.EndpointBase)
	assert.Equal(t, "ABC", conf.Gateway.ServiceID)
	assert.Equal(t, "sit12345", conf.Gateway.Password)
	assert.Equal(t, "s2s", conf.Gateway.ReturnURL)
	assert.Equal(t, 15*time.Second, conf.Gateway.Timeout)
	assert.Equal(t, int64(1048576), conf.Gateway.MaxBodyBytes)
	assert.False(t, conf.Mongo.Enabled)

	again, err := GetConfig("does-not-matter.yml")
	require.NoError(t, err)
	assert.Same(t, conf, again)
}

func TestGatewayValidate(t *testing.T) {
	g := Gateway{EndpointBase: "https://pay.e-ghl.com/ipgsg/payment.aspx", ServiceID: "SIT", Password: "sit12345"}
	assert.NoError(t, g.Validate())

	missing := g
	missing.EndpointBase = ""
	assert.Error(t, missing.Validate())

	missing = g
	missing.ServiceID = ""
	assert.Error(t, missing.Validate())

	missing = g
	missing.Password = ""
	assert.Error(t, missing.Validate())
}
