package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/curricula/internal/config"
	"github.com/abhisek/curricula/internal/llm"
	"github.com/abhisek/curricula/internal/logger"
	"github.com/abhisek/curricula/internal/store"
)

// runtime holds what every generating command needs.
type runtime struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *store.Store
	provider llm.Provider
	// providerName is empty when no backend is configured.
	providerName string
}

// openRuntime loads config, opens the store and builds the LLM provider.
// A missing API key is not an error: the provider is then Unconfigured
// and every stage uses its fallback.
func openRuntime(cmd *cobra.Command, alwaysLog bool) (*runtime, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	log := logger.Nop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose || alwaysLog {
		if log, err = logger.New(cfg.Log.Mode); err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	rt := &runtime{cfg: cfg, log: log, store: st}

	lc := cfg.LLMConfig()
	provider, err := llm.NewProvider(cmd.Context(), lc, st.EventRepo(), log)
	switch {
	case err == nil:
		rt.provider = provider
		rt.providerName = lc.Provider
		log.Info("llm provider ready", "provider", lc.Provider, "model", provider.ModelID())
	case errors.Is(err, llm.ErrCredentialMissing):
		rt.provider = llm.Unconfigured(err)
		log.Info("llm provider not configured, using templates", "reason", err)
	default:
		st.Close()
		return nil, err
	}
	return rt, nil
}

func (r *runtime) Close() {
	r.log.Sync()
	r.store.Close()
}
