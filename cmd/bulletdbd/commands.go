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

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bulletdb/bulletdb/field"
)

func newCreateAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-account <key-hex> <block-hash-hex>",
		Short: "create an empty account leaf",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseHash(args[0])
			if err != nil {
				return err
			}
			blockHash, err := parseHash(args[1])
			if err != nil {
				return err
			}
			if err := led.CreateAccount(key, blockHash, field.Hash{}); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func newPutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "put <key-hex> <val-hash-hex> <val-idx> <block-hash-hex>",
		Short: "write a value hash at the given index",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseHash(args[0])
			if err != nil {
				return err
			}
			valHash, err := parseHash(args[1])
			if err != nil {
				return err
			}
			idx, err := strconv.ParseUint(args[2], 10, 8)
			if err != nil {
				return err
			}
			blockHash, err := parseHash(args[3])
			if err != nil {
				return err
			}
			if err := led.Put(key, valHash, uint8(idx), blockHash, field.Hash{}); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func newFinalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <block-hash-hex>",
		Short: "finalize a block, printing its root hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blockHash, err := parseHash(args[0])
			if err != nil {
				return err
			}
			root, err := led.Finalize(blockHash)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(root[:]))
			return nil
		},
	}
}

func newJustifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "justify <block-hash-hex>",
		Short: "promote a finalized block's overlay into canonical state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blockHash, err := parseHash(args[0])
			if err != nil {
				return err
			}
			if err := led.Justify(blockHash); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func newPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune <block-hash-hex>",
		Short: "discard an unfinalized block's overlay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blockHash, err := parseHash(args[0])
			if err != nil {
				return err
			}
			if err := led.Prune(blockHash); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func newProveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prove <key-hex> <val-idx> <block-hash-hex>",
		Short: "generate an existence proof, printed as hex",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseHash(args[0])
			if err != nil {
				return err
			}
			idx, err := strconv.ParseUint(args[1], 10, 8)
			if err != nil {
				return err
			}
			blockHash, err := parseHash(args[2])
			if err != nil {
				return err
			}
			proof, err := led.GenerateExistenceProof(key, uint8(idx), blockHash)
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(proof))
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <key-hex> <val-hash-hex> <val-idx> <proof-hex>",
		Short: "validate an existence proof",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := parseHash(args[0])
			if err != nil {
				return err
			}
			valHash, err := parseHash(args[1])
			if err != nil {
				return err
			}
			idx, err := strconv.ParseUint(args[2], 10, 8)
			if err != nil {
				return err
			}
			proof, err := hex.DecodeString(args[3])
			if err != nil {
				return err
			}
			ok, err := led.ValidateProof(key, valHash, uint8(idx), proof)
			if err != nil {
				return err
			}
			fmt.Println(ok)
			return nil
		},
	}
}
