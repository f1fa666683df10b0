package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"veilpay/internal/wallet"
	"veilpay/internal/zkalgebra"
	"veilpay/internal/zkproof"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		printUsage(stdout)
		return 0
	}
	switch args[0] {
	case "inspect":
		return runInspect(args[1:], stdout, stderr)
	case "verify":
		return runVerify(args[1:], stdout, stderr)
	case "receipts":
		return runReceipts(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: veilpay <inspect|verify> [args]")
	fmt.Fprintln(w, "  inspect <hexblob|@file>")
	fmt.Fprintln(w, "  verify  --proof <hexblob|@file> --sender-after <hex64> --sender-old <hex64>")
	fmt.Fprintln(w, "          --recipient-old <hex64> --recipient-new <hex64>")
	fmt.Fprintln(w, "          [--amount <hex64>] [--algebraic] [--receipt <file>]")
	fmt.Fprintln(w, "  receipts --file <path> [--n 20]")
}

// readBlobArg accepts a hex string directly or @path for a file whose
// contents are hex (whitespace ignored).
func readBlobArg(arg string) ([]byte, error) {
	s := arg
	if strings.HasPrefix(arg, "@") {
		data, err := os.ReadFile(arg[1:])
		if err != nil {
			return nil, err
		}
		s = string(data)
	}
	s = strings.Join(strings.Fields(s), "")
	blob, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("bad hex blob: %v", err)
	}
	return blob, nil
}

func parseCommitment(name, s string) (zkproof.Commitment, error) {
	var c zkproof.Commitment
	raw, err := hex.DecodeString(s)
	if err != nil {
		return c, fmt.Errorf("--%s: bad hex: %v", name, err)
	}
	if len(raw) != len(c) {
		return c, fmt.Errorf("--%s: expected %d bytes, got %d", name, len(c), len(raw))
	}
	copy(c[:], raw)
	return c, nil
}

func runInspect(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: veilpay inspect <hexblob|@file>")
		return 1
	}
	blob, err := readBlobArg(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "size: %d bytes\n", len(blob))

	amount, err := zkproof.ExtractAmountCommitment(blob)
	if err != nil {
		fmt.Fprintf(stderr, "inspect: amount commitment: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "amount commitment: %s\n", hex.EncodeToString(amount[:]))

	proof, err := zkproof.Deserialize(blob)
	if err != nil {
		fmt.Fprintf(stderr, "inspect: %v\n", err)
		return 1
	}
	printRange := func(name string, rp *zkproof.RangeProof) {
		fmt.Fprintf(stdout, "%s: n=%d commitment=%s\n", name, rp.N, hex.EncodeToString(rp.Commitment[:8]))
	}
	printRange("amount range", &proof.AmountRange)
	printRange("sender-after range", &proof.SenderAfterRange)
	fmt.Fprintf(stdout, "sender equality:    R=%s s=%s\n",
		hex.EncodeToString(proof.Validity.SenderProof.R[:8]),
		hex.EncodeToString(proof.Validity.SenderProof.S[:8]))
	fmt.Fprintf(stdout, "recipient equality: R=%s s=%s\n",
		hex.EncodeToString(proof.Validity.RecipientProof.R[:8]),
		hex.EncodeToString(proof.Validity.RecipientProof.S[:8]))
	fmt.Fprintln(stdout, "structure: ok")
	return 0
}

func runVerify(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	proofArg := fs.String("proof", "", "proof blob (hex or @file)")
	amountHex := fs.String("amount", "", "amount commitment (hex, default: extracted from proof)")
	senderAfterHex := fs.String("sender-after", "", "sender post-transfer commitment (hex)")
	senderOldHex := fs.String("sender-old", "", "sender pre-transfer commitment (hex)")
	recipientOldHex := fs.String("recipient-old", "", "recipient pre-transfer commitment (hex)")
	recipientNewHex := fs.String("recipient-new", "", "recipient post-transfer commitment (hex)")
	algebraic := fs.Bool("algebraic", false, "also check point decoding and balance equations")
	receiptPath := fs.String("receipt", "", "append a verdict receipt to this file")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *proofArg == "" {
		fmt.Fprintln(stderr, "missing --proof")
		return 1
	}
	blob, err := readBlobArg(*proofArg)
	if err != nil {
		fmt.Fprintf(stderr, "verify: %v\n", err)
		return 1
	}

	var coms [4]zkproof.Commitment
	for i, arg := range []struct{ name, val string }{
		{"sender-after", *senderAfterHex},
		{"sender-old", *senderOldHex},
		{"recipient-old", *recipientOldHex},
		{"recipient-new", *recipientNewHex},
	} {
		if arg.val == "" {
			fmt.Fprintf(stderr, "missing --%s\n", arg.name)
			return 1
		}
		coms[i], err = parseCommitment(arg.name, arg.val)
		if err != nil {
			fmt.Fprintf(stderr, "verify: %v\n", err)
			return 1
		}
	}
	senderAfter, senderOld, recipientOld, recipientNew := coms[0], coms[1], coms[2], coms[3]

	var verifier zkproof.Verifier = zkproof.Structural{}
	if *algebraic {
		verifier = zkalgebra.Verifier{}
	}

	var amount zkproof.Commitment
	if *amountHex != "" {
		amount, err = parseCommitment("amount", *amountHex)
	} else {
		amount, err = verifier.ExtractAmountCommitment(blob)
	}
	if err != nil {
		fmt.Fprintf(stderr, "verify: %v\n", err)
		return 1
	}

	err = verifier.VerifyTransferProof(blob, &amount, &senderAfter, &senderOld, &recipientOld, &recipientNew)
	writeReceipt(*receiptPath, amount, len(blob), err, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "verify: REJECT: %v\n", err)
		return 1
	}
	if *algebraic {
		fmt.Fprintln(stdout, "ACCEPT (structural + algebraic)")
	} else {
		fmt.Fprintln(stdout, "ACCEPT (structural)")
	}
	return 0
}

func writeReceipt(path string, amount zkproof.Commitment, proofLen int, verdict error, stderr io.Writer) {
	if path == "" {
		return
	}
	st, err := wallet.NewStore(path)
	if err != nil {
		fmt.Fprintf(stderr, "receipt: %v\n", err)
		return
	}
	reason := ""
	if verdict != nil {
		reason = verdict.Error()
	}
	r, err := wallet.NewReceipt(hex.EncodeToString(amount[:]), proofLen, verdict == nil, reason)
	if err == nil {
		err = st.Add(r)
	}
	if err != nil {
		fmt.Fprintf(stderr, "receipt: %v\n", err)
	}
}

func runReceipts(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("receipts", flag.ContinueOnError)
	fs.SetOutput(stderr)
	path := fs.String("file", "", "receipts file")
	n := fs.Int("n", 20, "max entries")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *path == "" {
		fmt.Fprintln(stderr, "missing --file")
		return 1
	}
	st, err := wallet.NewStore(*path)
	if err != nil {
		fmt.Fprintf(stderr, "receipts: %v\n", err)
		return 1
	}
	list, err := st.List(*n)
	if err != nil {
		fmt.Fprintf(stderr, "receipts: %v\n", err)
		return 1
	}
	for _, r := range list {
		verdict := "REJECT"
		if r.Accepted {
			verdict = "ACCEPT"
		}
		amount := r.AmountCommitment
		if len(amount) > 16 {
			amount = amount[:16]
		}
		fmt.Fprintf(stdout, "%s %s amount=%s proof=%dB", r.CreatedAt.Format("2006-01-02T15:04:05Z"), verdict, amount, r.ProofLen)
		if r.Reason != "" {
			fmt.Fprintf(stdout, " reason=%s", r.Reason)
		}
		fmt.Fprintln(stdout)
	}
	return 0
}
