package main

import (
	"context"

	"github.com/spf13/viper"

	"github.com/jwen/qbank/internal/kpindex"
	"github.com/jwen/qbank/internal/questionbank"
	"github.com/jwen/qbank/internal/recordstore"
	"github.com/jwen/qbank/pkg/types"
)

// storeConfig resolves the storage settings: explicit flags win, then the
// config file and QBANK_* environment, then defaults.
func storeConfig() types.StoreConfig {
	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("data_dir")
	}
	backend, _ := rootCmd.PersistentFlags().GetString("backend")
	if backend == "" {
		backend = viper.GetString("backend")
	}
	return types.StoreConfig{DataDir: dataDir, Backend: types.StorageBackend(backend)}
}

// openIndex loads the knowledge point index from the configured store.
// Callers own the returned index and close it when done.
func openIndex(ctx context.Context) (*kpindex.Index, error) {
	store, err := recordstore.Open(storeConfig(), recordstore.CollectionKnowledgePoints)
	if err != nil {
		return nil, err
	}
	ix, err := kpindex.New(ctx, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return ix, nil
}

// openBank loads the question bank from the configured store.
func openBank(ctx context.Context) (*questionbank.Bank, error) {
	store, err := recordstore.Open(storeConfig(), recordstore.CollectionQuestions)
	if err != nil {
		return nil, err
	}
	bank, err := questionbank.New(ctx, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return bank, nil
}
