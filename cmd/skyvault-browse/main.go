// Command skyvault-browse is a terminal front end for the archive:
// the availability calendar plus the size-estimate and download actions
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"skyvault/internal/browse"
	"skyvault/internal/client"
	"skyvault/internal/core/datekey"
	"skyvault/internal/platform/config"
	"skyvault/internal/platform/logger"
)

func main() {
	var baseURL string
	flag.StringVar(&baseURL, "server", "", "archive API base URL (default CORE_BROWSE_SERVER)")
	flag.Parse()

	config.DotEnv(".env")
	root := config.New()
	browseCfg := root.Prefix("CORE_BROWSE_")
	logger.Init(logger.FromEnv())

	if baseURL == "" {
		baseURL = browseCfg.MayString("SERVER", "http://localhost:4000")
	}

	api := client.New(baseURL, nil)
	ctl := browse.New(api, time.Now())

	ctx := context.Background()
	if err := ctl.Refresh(ctx); err != nil {
		color.Red("availability fetch failed: %v", err)
	}
	render(ctl.View())

	repl(ctx, ctl, api)
}

func repl(ctx context.Context, ctl *browse.Controller, api *client.Client) {
	in := bufio.NewScanner(os.Stdin)
	help()
	for {
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		fields := strings.Fields(in.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "q", "quit":
			return
		case "h", "help":
			help()
		case "n", "next":
			if err := ctl.Navigate(ctx, browse.DirNext); err != nil {
				color.Red("%v", err)
			}
			render(ctl.View())
		case "p", "prev":
			if err := ctl.Navigate(ctx, browse.DirPrev); err != nil {
				color.Red("%v", err)
			}
			render(ctl.View())
		case "r", "refresh":
			if err := ctl.Refresh(ctx); err != nil {
				color.Red("%v", err)
			}
			render(ctl.View())
		case "e", "estimate":
			form, ok := readForm(in, fields[1:])
			if !ok {
				continue
			}
			mb, err := api.EstimateSize(ctx, form)
			if err != nil {
				color.Red("estimate failed: %v", err)
				continue
			}
			fmt.Printf("estimated size: %s\n", color.CyanString("%.2f MB", mb))
		case "d", "download":
			form, ok := readForm(in, fields[1:])
			if !ok {
				continue
			}
			saveZip(ctx, "images.zip", func(f *os.File) (int64, error) {
				return api.Download(ctx, form, f)
			})
		case "day":
			if len(fields) != 2 {
				color.Yellow("usage: day YYYYMMDD")
				continue
			}
			night := datekey.Key(fields[1])
			saveZip(ctx, fmt.Sprintf("%s_images.zip", night), func(f *os.File) (int64, error) {
				return api.DownloadByDate(ctx, night, f)
			})
		default:
			color.Yellow("unknown command %q, h for help", fields[0])
		}
	}
}

func help() {
	fmt.Println(`commands:
  n / p        next / previous month
  r            re-fetch availability
  e START END REF [clear]   estimate selection size
  d START END REF [clear]   download selection to images.zip
  day YYYYMMDD              download one night
  q            quit
dates are 2006-01-02, REF is 2006-01-02T15:04 local time`)
}

// readForm builds the request form from command arguments:
// START END REF [clear]
func readForm(_ *bufio.Scanner, args []string) (browse.FormState, bool) {
	if len(args) < 3 {
		color.Yellow("need START END REF, h for help")
		return browse.FormState{}, false
	}
	form := browse.FormState{
		StartDate:        args[0],
		EndDate:          args[1],
		ReferenceInstant: args[2],
		LimitClearImages: len(args) > 3 && args[3] == "clear",
	}
	if !form.Ready() {
		color.Yellow("all of START END REF are required")
		return browse.FormState{}, false
	}
	return form, true
}

func saveZip(_ context.Context, name string, write func(*os.File) (int64, error)) {
	f, err := os.Create(name)
	if err != nil {
		color.Red("create %s: %v", name, err)
		return
	}
	n, err := write(f)
	f.Close()
	if err != nil {
		// don't leave a truncated archive behind
		os.Remove(name)
		color.Red("download failed: %v", err)
		return
	}
	fmt.Printf("wrote %s (%d bytes)\n", color.GreenString(name), n)
}

var weekdayHeader = "Mon Tue Wed Thu Fri Sat Sun"

func render(v browse.View) {
	bold := color.New(color.Bold)
	bold.Printf("\n%s %d", time.Month(v.Cursor.Month0+1), v.Cursor.Year)
	switch v.State {
	case browse.StateLoading:
		fmt.Print("  (loading)")
	case browse.StateError:
		color.Red("  fetch failed: %v", v.Err)
	}
	fmt.Println()
	fmt.Println(weekdayHeader)

	populated := color.New(color.FgGreen, color.Bold)
	for _, week := range v.Grid.Weeks {
		for _, cell := range week {
			switch {
			case cell.Blank():
				fmt.Print("    ")
			case cell.Populated:
				populated.Printf("%3d ", cell.Day)
			default:
				fmt.Printf("%3d ", cell.Day)
			}
		}
		fmt.Println()
	}

	prev, next := "prev: off", "next: off"
	if v.PrevEnabled {
		prev = "prev: on"
	}
	if v.NextEnabled {
		next = "next: on"
	}
	fmt.Printf("[%s] [%s]\n", prev, next)
}
