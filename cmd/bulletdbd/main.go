// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

// Command bulletdbd is a thin operator CLI over the ledger façade: it
// opens (or creates) a store and exposes its block lifecycle and
// value operations as subcommands. None of the cryptographic or trie
// logic lives here; this is wiring only, the way the teacher keeps
// its cmd/ tools as small standalone mains around the library.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bulletdb/bulletdb/field"
	"github.com/bulletdb/bulletdb/ledger"
)

var (
	cfgFile string
	led     *ledger.Ledger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bulletdbd",
		Short: "bulletdbd operates a bulletdb ledger store",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return openLedger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if led != nil {
				led.Close()
			}
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.bulletdbd.yaml)")
	root.PersistentFlags().String("path", "bulletdb.db", "persistent store file path")
	root.PersistentFlags().Int("cache-size", 4096, "number of cached nodes")
	root.PersistentFlags().Int("map-size", 1<<30, "on-disk capacity hint in bytes")
	root.PersistentFlags().String("tag", "bulletdb", "domain separation tag")
	root.PersistentFlags().String("secret", "", "hex-encoded SRS seed; empty uses OS randomness")
	root.PersistentFlags().String("shard-prefix", "", "hex-encoded shard key prefix")

	viper.BindPFlag("path", root.PersistentFlags().Lookup("path"))
	viper.BindPFlag("cache-size", root.PersistentFlags().Lookup("cache-size"))
	viper.BindPFlag("map-size", root.PersistentFlags().Lookup("map-size"))
	viper.BindPFlag("tag", root.PersistentFlags().Lookup("tag"))
	viper.BindPFlag("secret", root.PersistentFlags().Lookup("secret"))
	viper.BindPFlag("shard-prefix", root.PersistentFlags().Lookup("shard-prefix"))

	cobra.OnInitialize(initConfig)

	root.AddCommand(
		newCreateAccountCmd(),
		newPutCmd(),
		newFinalizeCmd(),
		newJustifyCmd(),
		newPruneCmd(),
		newProveCmd(),
		newValidateCmd(),
	)
	return root
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".bulletdbd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("$HOME")
	}
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func openLedger() error {
	secret, err := hex.DecodeString(viper.GetString("secret"))
	if err != nil {
		return fmt.Errorf("decoding --secret: %w", err)
	}
	shardPrefix, err := hex.DecodeString(viper.GetString("shard-prefix"))
	if err != nil {
		return fmt.Errorf("decoding --shard-prefix: %w", err)
	}
	led, err = ledger.New(ledger.Config{
		Path:        viper.GetString("path"),
		CacheSize:   viper.GetInt("cache-size"),
		MapSize:     viper.GetInt("map-size"),
		Tag:         []byte(viper.GetString("tag")),
		Secret:      secret,
		ShardPrefix: shardPrefix,
	})
	return err
}

func parseHash(s string) (field.Hash, error) {
	var h field.Hash
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}
