package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/venuematch/internal/adapters/repository"
	"github.com/okian/venuematch/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestFileStore(t *testing.T) {
	convey.Convey("Given a file store in an empty directory", t, func() {
		dir := t.TempDir()
		ctx := context.Background()
		paths := repository.Paths{
			Matched:   filepath.Join(dir, "results", "matchedVenues.json"),
			Unmatched: filepath.Join(dir, "results", "unmatchedVenues.json"),
			Final:     filepath.Join(dir, "results", "finalVenues.json"),
		}
		store := repository.NewFileStore(paths)

		convey.Convey("When loading before anything was saved", func() {
			state, err := store.LoadState(ctx)

			convey.Convey("Then the state does not exist", func() {
				convey.So(state, convey.ShouldBeNil)
				convey.So(errors.Is(err, repository.ErrStateNotFound), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When state is saved and loaded back", func() {
			matched := []model.MatchRecord{{
				Venue: "LT14",
				Rule:  "lecture-theatre",
				Room:  &model.Room{RoomCode: "LT-14", RoomName: "LECTURE THEATRE 14", Dept: "Z"},
			}}
			convey.So(store.SaveMatched(ctx, matched), convey.ShouldBeNil)
			convey.So(store.SaveUnmatched(ctx, []string{"UNKNOWN1"}), convey.ShouldBeNil)

			state, err := store.LoadState(ctx)

			convey.Convey("Then both collections come back", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(state.Matched, convey.ShouldResemble, matched)
				convey.So(state.Unmatched, convey.ShouldResemble, []string{"UNKNOWN1"})
			})

			convey.Convey("Then documents are tab-indented JSON", func() {
				data, err := os.ReadFile(paths.Unmatched)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, "[\n\t\"UNKNOWN1\"\n]")
			})

			convey.Convey("Then no temporary files are left behind", func() {
				entries, err := os.ReadDir(filepath.Dir(paths.Matched))
				convey.So(err, convey.ShouldBeNil)
				convey.So(entries, convey.ShouldHaveLength, 2)
			})
		})

		convey.Convey("When empty collections are saved", func() {
			convey.So(store.SaveUnmatched(ctx, nil), convey.ShouldBeNil)
			convey.So(store.SaveFinal(ctx, nil), convey.ShouldBeNil)

			convey.Convey("Then they are written as empty arrays", func() {
				data, err := os.ReadFile(paths.Final)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldEqual, "[]")

				state, err := store.LoadState(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(state.Matched, convey.ShouldBeEmpty)
				convey.So(state.Unmatched, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When a document is replaced", func() {
			convey.So(store.SaveUnmatched(ctx, []string{"A", "B"}), convey.ShouldBeNil)
			convey.So(store.SaveUnmatched(ctx, []string{"C"}), convey.ShouldBeNil)

			state, err := store.LoadState(ctx)

			convey.So(err, convey.ShouldBeNil)
			convey.So(state.Unmatched, convey.ShouldResemble, []string{"C"})
		})

		convey.Convey("When a document is corrupt", func() {
			convey.So(os.MkdirAll(filepath.Dir(paths.Matched), 0o755), convey.ShouldBeNil)
			convey.So(os.WriteFile(paths.Matched, []byte("[{"), 0o600), convey.ShouldBeNil)

			_, err := store.LoadState(ctx)

			convey.So(errors.Is(err, repository.ErrCorruptState), convey.ShouldBeTrue)
		})

		convey.Convey("When the target directory cannot be created", func() {
			blocker := filepath.Join(dir, "blocker")
			convey.So(os.WriteFile(blocker, []byte("x"), 0o600), convey.ShouldBeNil)
			broken := repository.NewFileStore(repository.Paths{Final: filepath.Join(blocker, "final.json")})

			err := broken.SaveFinal(ctx, []model.FinalVenue{{Venue: "A"}})

			convey.So(errors.Is(err, repository.ErrWrite), convey.ShouldBeTrue)
		})

		convey.Convey("When a file mode is configured", func() {
			private := repository.NewFileStore(paths, repository.WithFileMode(0o600))
			convey.So(private.SaveUnmatched(ctx, []string{"A"}), convey.ShouldBeNil)

			info, err := os.Stat(paths.Unmatched)
			convey.So(err, convey.ShouldBeNil)
			convey.So(info.Mode().Perm(), convey.ShouldEqual, os.FileMode(0o600))
		})
	})
}
