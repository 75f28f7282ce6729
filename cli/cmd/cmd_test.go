package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/cryptoboard"
)

func TestRootCommand_Whitelist(t *testing.T) {
	asserts := require.New(t)
	ctx := context.Background()
	storage := &memoryStorage{}
	debugSeen := false

	load := func(ctx context.Context, debug bool) (*Config, error) {
		debugSeen = debug
		config := testConfig(ctx, "http://localhost")
		config.Storages = []cryptoboard.Storage{storage}

		return config, nil
	}

	rootCmd, config := newRootCmd(ctx, load)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"whitelist", "--debug"})

	asserts.NoError(rootCmd.ExecuteContext(ctx))
	asserts.Equal("EUR\nUSD\n", out.String())
	asserts.True(debugSeen)
	asserts.True(*config.debug)

	asserts.NoError(config.Close())
	asserts.True(storage.closed)
}

func TestRootCommand_LoaderError(t *testing.T) {
	asserts := require.New(t)
	loadErr := errors.New("invalid whitelist")

	load := func(ctx context.Context, debug bool) (*Config, error) {
		return nil, loadErr
	}

	rootCmd, _ := newRootCmd(context.Background(), load)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"whitelist"})

	asserts.True(errors.Is(rootCmd.Execute(), loadErr))
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	asserts := require.New(t)

	load := func(ctx context.Context, debug bool) (*Config, error) {
		return testConfig(ctx, "http://localhost"), nil
	}

	rootCmd, _ := newRootCmd(context.Background(), load)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"whitelist", "--config", "/does/not/exist.yml"})

	asserts.Error(rootCmd.Execute())
}
