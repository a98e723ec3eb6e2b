package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fingervision/ridgemark/internal/enhance"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultBlockSize, cfg.BlockSize)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockSize = 0
	assert.Error(t, cfg.Validate())
	cfg.BlockSize = -3
	assert.Error(t, cfg.Validate())
}

func TestBuilderDefaults(t *testing.T) {
	p, err := NewBuilder().Build()
	require.NoError(t, err)
	assert.Equal(t, DefaultBlockSize, p.Config().BlockSize)
}

func TestBuilderWithBlockSize(t *testing.T) {
	p, err := NewBuilder().WithBlockSize(7).Build()
	require.NoError(t, err)
	assert.Equal(t, 7, p.Config().BlockSize)

	// Non-positive values are ignored rather than breaking the chain.
	p, err = NewBuilder().WithBlockSize(0).Build()
	require.NoError(t, err)
	assert.Equal(t, DefaultBlockSize, p.Config().BlockSize)
}

func TestBuilderWithEnhanceConfig(t *testing.T) {
	cfg := enhance.DefaultBasicConfig()
	cfg.BlockSize = 8
	p, err := NewBuilder().WithEnhanceConfig(cfg).Build()
	require.NoError(t, err)
	assert.Equal(t, 8, p.Config().Enhance.BlockSize)
}

func TestUninitializedPipeline(t *testing.T) {
	var p *Pipeline
	_, _, err := p.Run(nil)
	assert.Error(t, err)
}
