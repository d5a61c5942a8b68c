package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/pktpoint/idec/internal/config"
	"github.com/pktpoint/idec/internal/message"
	"github.com/pktpoint/idec/internal/uplink"
)

// fetchChunk is how many msgids go into one batched u/m request.
const fetchChunk = 40

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: point [-config file] <command> [args]

Echomail:
  areas                      list public echoareas
  blacklist                  list blacklisted msgids
  index <area>               msgid index of one area
  msg <msgid>                fetch and print one message
  fetch [-start N -end N] [area...]
                             fetch messages from areas (default: subscribed)
  post [-area A -to T -subj S -repto ID] [-file path]
                             post a message (body from -file or stdin)
  push -area A <bundlefile>  push a message bundle (node mode)
  counts [area...]           per-area message counts
  features                   uplink feature flags

Files:
  files                      list public fileareas
  fblacklist                 list blacklisted files
  fcounts [filearea...]      per-filearea file counts
  findex [-start N -end N] <filearea...>
                             filearea index
  fget [-o path] <filearea> <fid>
                             download a file
  fput [-dsc text] -area A <path>
                             upload a file
  xfilelist                  uplink-wide file list (requires auth)
  xfile [-o path] <name>     download an uplink file (requires auth)
`)
	os.Exit(2)
}

func main() {
	configPath := flag.String("config", "point.yaml", "path to configuration file")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Uplink.URL == "" {
		log.Fatalf("No uplink URL configured in %s", *configPath)
	}

	ctx := context.Background()
	if err := run(ctx, cfg, *configPath, args[0], args[1:]); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, configPath, command string, args []string) error {
	httpClient := &http.Client{Timeout: cfg.Timeout()}

	newUplink := func(needAuth bool) (*uplink.Uplink, error) {
		auth := cfg.Uplink.Auth
		if needAuth && auth == "" {
			prompted, err := promptAuth()
			if err != nil {
				return nil, err
			}
			auth = prompted
		}
		return uplink.New(cfg.Uplink.URL, auth, cfg.Uplink.Areas, httpClient), nil
	}

	switch command {
	case "areas":
		ul, _ := newUplink(false)
		items, err := ul.AreaList(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Printf("%-30s %6d  %s\n", it.Name, it.Count, it.Description)
		}
		return nil

	case "blacklist":
		ul, _ := newUplink(false)
		set, err := ul.Blacklist(ctx)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil

	case "index":
		if len(args) != 1 {
			return fmt.Errorf("usage: point index <area>")
		}
		ul, _ := newUplink(false)
		ids, err := ul.AreaIndex(ctx, args[0])
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil

	case "msg":
		if len(args) != 1 {
			return fmt.Errorf("usage: point msg <msgid>")
		}
		ul, _ := newUplink(false)
		msg, err := ul.Message(ctx, args[0])
		if err != nil {
			return err
		}
		printMessage(msg)
		return nil

	case "fetch":
		fs := flag.NewFlagSet("fetch", flag.ExitOnError)
		start := fs.Int("start", 0, "slice start (negative = from tail)")
		end := fs.Int("end", 0, "slice end")
		_ = fs.Parse(args)

		areas := fs.Args()
		if len(areas) == 0 {
			areas = cfg.Uplink.Areas
		}
		if len(areas) == 0 {
			return fmt.Errorf("no areas given and none subscribed in config")
		}

		ul, _ := newUplink(false)
		ids, err := ul.MergedIndex(ctx, areas, *start, *end)
		if err != nil {
			return err
		}
		for len(ids) > 0 {
			n := min(fetchChunk, len(ids))
			msgs, err := ul.Messages(ctx, ids[:n])
			if err != nil {
				return err
			}
			for _, msg := range msgs {
				printMessage(msg)
				fmt.Println(strings.Repeat("-", 70))
			}
			ids = ids[n:]
		}
		return nil

	case "post":
		fs := flag.NewFlagSet("post", flag.ExitOnError)
		area := fs.String("area", "", "target echoarea")
		to := fs.String("to", "All", "addressee")
		subj := fs.String("subj", "", "subject")
		repto := fs.String("repto", "", "msgid this message replies to")
		file := fs.String("file", "", "read body from file instead of stdin")
		_ = fs.Parse(args)

		if *area == "" || *subj == "" {
			return fmt.Errorf("post: -area and -subj are required")
		}
		body, err := readBody(*file)
		if err != nil {
			return err
		}

		ul, err := newUplink(true)
		if err != nil {
			return err
		}
		ack, err := ul.PostMessage(ctx, message.ComposePoint(*area, *to, *subj, *repto, body))
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimSpace(ack))
		return nil

	case "push":
		fs := flag.NewFlagSet("push", flag.ExitOnError)
		area := fs.String("area", "", "target echoarea")
		_ = fs.Parse(args)
		if *area == "" || fs.NArg() != 1 {
			return fmt.Errorf("usage: point push -area <area> <bundlefile>")
		}
		data, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			return fmt.Errorf("read bundle: %w", err)
		}
		var bundle []string
		for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
			if line != "" {
				bundle = append(bundle, line)
			}
		}

		ul, err := newUplink(true)
		if err != nil {
			return err
		}
		ack, err := ul.PushBundle(ctx, *area, bundle)
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimSpace(ack))
		return nil

	case "counts":
		areas := args
		if len(areas) == 0 {
			areas = cfg.Uplink.Areas
		}
		ul, _ := newUplink(false)
		counts, err := ul.Counts(ctx, areas)
		if err != nil {
			return err
		}
		printCounts(counts)
		return nil

	case "features":
		ul, _ := newUplink(false)
		features, err := ul.Features(ctx)
		if err != nil {
			return err
		}
		for _, f := range features {
			fmt.Println(f)
		}
		return nil

	case "files":
		ul, _ := newUplink(false)
		items, err := ul.FileList(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Printf("%-30s %6d  %s\n", it.Name, it.Count, it.Description)
		}
		return nil

	case "fblacklist":
		ul, _ := newUplink(false)
		files, err := ul.FileBlacklist(ctx)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Println(f)
		}
		return nil

	case "fcounts":
		ul, _ := newUplink(false)
		counts, err := ul.FileCounts(ctx, args)
		if err != nil {
			return err
		}
		printCounts(counts)
		return nil

	case "findex":
		fs := flag.NewFlagSet("findex", flag.ExitOnError)
		start := fs.Int("start", 0, "slice start (negative = from tail)")
		end := fs.Int("end", 0, "slice end")
		_ = fs.Parse(args)
		if fs.NArg() == 0 {
			return fmt.Errorf("usage: point findex [-start N -end N] <filearea...>")
		}

		ul, _ := newUplink(false)
		items, err := ul.FileIndex(ctx, fs.Args(), *start, *end)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Printf("%-20s %-6s %-30s %10d  %s\n", it.Filearea, it.FID, it.Name, it.Size, it.Description)
		}
		return nil

	case "fget":
		fs := flag.NewFlagSet("fget", flag.ExitOnError)
		out := fs.String("o", "", "output path (default: downloads dir)")
		_ = fs.Parse(args)
		if fs.NArg() != 2 {
			return fmt.Errorf("usage: point fget [-o path] <filearea> <fid>")
		}

		ul, _ := newUplink(false)
		data, err := ul.DownloadFile(ctx, fs.Arg(0), fs.Arg(1))
		if err != nil {
			return err
		}
		return saveDownload(cfg, *out, fs.Arg(1), data)

	case "fput":
		fs := flag.NewFlagSet("fput", flag.ExitOnError)
		area := fs.String("area", "", "target filearea")
		dsc := fs.String("dsc", "", "short file description")
		_ = fs.Parse(args)
		if *area == "" || fs.NArg() != 1 {
			return fmt.Errorf("usage: point fput -area <filearea> [-dsc text] <path>")
		}

		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer f.Close()

		ul, err := newUplink(true)
		if err != nil {
			return err
		}
		ack, err := ul.UploadFile(ctx, *area, *dsc, filepath.Base(fs.Arg(0)), f)
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimSpace(ack))
		return nil

	case "xfilelist":
		ul, err := newUplink(true)
		if err != nil {
			return err
		}
		items, err := ul.PrivateFileList(ctx)
		if err != nil {
			return err
		}
		for _, it := range items {
			fmt.Printf("%-30s %10d  %s\n", it.Name, it.Size, it.Description)
		}
		return nil

	case "xfile":
		fs := flag.NewFlagSet("xfile", flag.ExitOnError)
		out := fs.String("o", "", "output path (default: downloads dir)")
		_ = fs.Parse(args)
		if fs.NArg() != 1 {
			return fmt.Errorf("usage: point xfile [-o path] <name>")
		}

		ul, err := newUplink(true)
		if err != nil {
			return err
		}
		data, err := ul.PrivateFile(ctx, fs.Arg(0))
		if err != nil {
			return err
		}
		return saveDownload(cfg, *out, fs.Arg(0), data)

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func printMessage(msg message.Message) {
	date := time.Unix(msg.Date, 0).UTC().Format("2006-01-02 15:04")
	fmt.Printf("MsgID: %s\n", msg.MsgID)
	fmt.Printf("Area:  %s\n", msg.Echoarea)
	fmt.Printf("Date:  %s\n", date)
	fmt.Printf("From:  %s (%s)\n", msg.From, msg.Address)
	fmt.Printf("To:    %s\n", msg.To)
	fmt.Printf("Subj:  %s\n", msg.Subject)
	fmt.Println()
	fmt.Println(msg.Body)
}

func printCounts(counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-30s %6d\n", name, counts[name])
	}
}

func readBody(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read body: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read body from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func saveDownload(cfg *config.Config, out, name string, data []byte) error {
	path := out
	if path == "" {
		if err := os.MkdirAll(cfg.Paths.Downloads, 0755); err != nil {
			return fmt.Errorf("create downloads directory: %w", err)
		}
		path = filepath.Join(cfg.Paths.Downloads, filepath.Base(name))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save download: %w", err)
	}
	fmt.Printf("Saved %d bytes to %s\n", len(data), path)
	return nil
}

// promptAuth asks for the uplink auth string with echo disabled,
// falling back to plain line input when stdin is not a terminal.
func promptAuth() (string, error) {
	fmt.Fprint(os.Stderr, "Uplink auth string: ")
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read auth string: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read auth string: %w", err)
	}
	return strings.TrimSpace(line), nil
}
