// Command reactiond serve o endpoint de contagem de reações do site.
//
//	reactiond serve            sobe o servidor HTTP
//	reactiond migrate          cria a tabela/índice nos backends SQL
//	reactiond get <slug>       executa o mesmo fluxo do endpoint e imprime o JSON
//
// A configuração vem de --config (YAML, opcional) e das variáveis de
// ambiente (LISTEN_ADDR, STORE_BACKEND, STORE_SECRET, ...).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reaction-counter/config"
	"reaction-counter/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globals struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "reactiond",
		Short:         "Reaction counter service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "reactiond.yaml", "path to YAML config (missing file = defaults)")

	root.AddCommand(newServeCmd(g), newMigrateCmd(g), newGetCmd(g))
	return root
}

// load lê a config e monta o logger no modo configurado.
func (g *globals) load() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config error: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("logger error: %w", err)
	}
	return cfg, log, nil
}
