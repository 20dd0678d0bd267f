package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"atelier/internal/client"
	"atelier/internal/config"
	"atelier/internal/store"
	"atelier/internal/types"
)

func runRecords(args []string) error {
	fs := flag.NewFlagSet("records", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	remote := fs.Bool("remote", false, "list via the gateway instead of the local cache")
	deleteID := fs.String("delete", "", "delete a record by id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	user := settings.User()

	if strings.TrimSpace(*deleteID) != "" {
		return deleteRecord(ctx, settings, user, strings.TrimSpace(*deleteID))
	}
	if *remote {
		return listRemoteRecords(ctx, settings, user)
	}
	return listCachedRecords(ctx, user)
}

func deleteRecord(ctx context.Context, settings config.Settings, user, id string) error {
	gateway, err := client.New(&settings)
	if err != nil {
		return err
	}
	token, err := gateway.Token(ctx, user)
	if err != nil {
		return err
	}
	if err := gateway.DeleteRecord(ctx, token, id); err != nil {
		return err
	}
	fmt.Printf("deleted record %s\n", id)
	return syncCache(ctx, gateway, token, user)
}

func listRemoteRecords(ctx context.Context, settings config.Settings, user string) error {
	gateway, err := client.New(&settings)
	if err != nil {
		return err
	}
	token, err := gateway.Token(ctx, user)
	if err != nil {
		return err
	}
	records, err := gateway.ListRecords(ctx, token)
	if err != nil {
		return err
	}
	if err := saveRecordsToCache(ctx, user, records); err != nil {
		fmt.Fprintf(os.Stderr, "warning: cache not updated: %v\n", err)
	}
	printRecords(os.Stdout, records)
	return nil
}

func listCachedRecords(ctx context.Context, user string) error {
	cachePath, err := config.CachePath()
	if err != nil {
		return err
	}
	cache, err := store.OpenCache(cachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	records, err := cache.LoadRecords(ctx, user)
	if errors.Is(err, store.ErrNoCachedRecords) {
		fmt.Println("no cached records; run `atelier records --remote` to sync")
		return nil
	}
	if err != nil {
		return err
	}
	printRecords(os.Stdout, records)
	return nil
}

func syncCache(ctx context.Context, gateway *client.Client, token, user string) error {
	records, err := gateway.ListRecords(ctx, token)
	if err != nil {
		return nil
	}
	return saveRecordsToCache(ctx, user, records)
}

func saveRecordsToCache(ctx context.Context, user string, records []types.Record) error {
	cachePath, err := config.CachePath()
	if err != nil {
		return err
	}
	cache, err := store.OpenCache(cachePath)
	if err != nil {
		return err
	}
	defer cache.Close()
	return cache.SaveRecords(ctx, user, records)
}

func printRecords(w io.Writer, records []types.Record) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tPROMPT\tURL")
	for _, record := range records {
		created := ""
		if !record.CreatedAt.IsZero() {
			created = record.CreatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", record.ID, created, record.Prompt, record.URL)
	}
	_ = tw.Flush()
}
