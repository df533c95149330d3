package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nomadreads/nomadreads-server/internal/domain/recommendation"
	"github.com/nomadreads/nomadreads-server/internal/infrastructure/logger"
	"github.com/nomadreads/nomadreads-server/internal/utils/httpclients"
)

func newRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <destination>",
		Short: "Ask a running server for travel reading",
		Long:  `POST a destination to /v1/recommend and print the categories, books and store links.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRecommend,
	}
	cmd.Flags().String("server", "http://localhost:8080", "Base URL of the recommendation server")
	cmd.Flags().String("locale", "", "Country or locale used to pick the storefront")
	cmd.Flags().String("country", "", "Value sent as the X-Country header")
	cmd.Flags().Duration("timeout", 60*time.Second, "Request timeout")
	cmd.Flags().Bool("links", true, "Print store links for each book")
	return cmd
}

func runRecommend(cmd *cobra.Command, args []string) error {
	server, _ := cmd.Flags().GetString("server")
	locale, _ := cmd.Flags().GetString("locale")
	country, _ := cmd.Flags().GetString("country")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	showLinks, _ := cmd.Flags().GetBool("links")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if verbose {
		if _, err := logger.NewWithWriter(cmd.ErrOrStderr(), zerolog.DebugLevel.String(), "console"); err != nil {
			return err
		}
	}

	body := recommendation.Request{
		Destination: strings.Join(args, " "),
		Locale:      locale,
	}

	var result recommendation.RecommendationSet
	req := httpclients.NewClient("nomadreads-cli", timeout).R().
		SetContext(cmd.Context()).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result)
	if country != "" {
		req.SetHeader("X-Country", country)
	}

	resp, err := req.Post(strings.TrimRight(server, "/") + "/v1/recommend")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	printRecommendations(cmd.OutOrStdout(), &result, showLinks)
	return nil
}

func printRecommendations(w io.Writer, set *recommendation.RecommendationSet, showLinks bool) {
	if set.Destination != "" {
		fmt.Fprintf(w, "Reading for %s\n\n", set.Destination)
	}
	for _, category := range set.Categories {
		fmt.Fprintf(w, "%s\n", category.Name)
		for _, book := range category.Books {
			fmt.Fprintf(w, "  - %s by %s\n", book.Title, book.Author)
			if book.Why != "" {
				fmt.Fprintf(w, "    %s\n", book.Why)
			}
			if showLinks && book.Links != nil {
				fmt.Fprintf(w, "    paperback: %s\n", book.Links.Paperback)
				fmt.Fprintf(w, "    kindle:    %s\n", book.Links.Kindle)
				fmt.Fprintf(w, "    audio:     %s\n", book.Links.Audio)
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d books\n", set.BookCount())
}
