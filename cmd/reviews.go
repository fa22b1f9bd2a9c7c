package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/klinik-cli/internal/adapters/render/view"
	"github.com/bnema/klinik-cli/internal/domain"
)

type reviewsPage struct {
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
}

func newReviewsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Read and write patient reviews",
	}

	cmd.AddCommand(
		newReviewsListCmd(app),
		newReviewsAverageCmd(app),
		newReviewsAddCmd(app),
	)

	return cmd
}

func newReviewsListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List approved reviews with the average rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := fetch(cmd, app, "Fetching reviews...", func(ctx context.Context) (reviewsPage, error) {
				reviews, err := app.clinic.Reviews.Approved(ctx)
				if err != nil {
					return reviewsPage{}, err
				}
				average, err := app.clinic.Reviews.AverageRating(ctx)
				if err != nil {
					return reviewsPage{}, err
				}
				return reviewsPage{Reviews: reviews, AverageRating: average}, nil
			})
			if err != nil {
				return fmt.Errorf("list reviews: %w", err)
			}
			return writeOutput(cmd, app, page, view.Reviews(page.Reviews, page.AverageRating))
		},
	}
}

func newReviewsAverageCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "average",
		Short: "Show the average rating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			average, err := fetch(cmd, app, "Fetching average rating...", app.clinic.Reviews.AverageRating)
			if err != nil {
				return fmt.Errorf("average rating: %w", err)
			}
			if app.asJSON {
				return writeJSON(cmd, map[string]float64{"averageRating": average})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.1f / 5\n", average)
			return err
		},
	}
}

func newReviewsAddCmd(app *app) *cobra.Command {
	var review domain.Review

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Submit a review for approval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if review.Rating < 1 || review.Rating > 5 {
				return fmt.Errorf("rating must be between 1 and 5, got %d", review.Rating)
			}

			created, err := fetch(cmd, app, "Submitting review...", func(ctx context.Context) (domain.Review, error) {
				return app.clinic.Reviews.Create(ctx, review)
			})
			if err != nil {
				return fmt.Errorf("add review: %w", err)
			}
			return writeOutput(cmd, app, created, view.Reviews([]domain.Review{created}, -1))
		},
	}

	cmd.Flags().StringVar(&review.PatientName, "name", "", "Your name")
	cmd.Flags().IntVar(&review.Rating, "rating", 0, "Rating from 1 to 5")
	cmd.Flags().StringVar(&review.Comment, "comment", "", "Comment")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}
