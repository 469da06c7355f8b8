// Viewer prints the persisted chat snapshot as tables: the full history
// and the per-user send counts. It only reads the snapshot document, so
// it is safe to run while the server is up.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"chat-room/store"
)

type Config struct {
	SnapshotFilepath string `env:"SNAPSHOT_FILEPATH,required=true"`
}

func main() {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	snap, found, err := store.NewFileSnapshotStore(config.SnapshotFilepath).Load()
	if err != nil {
		log.Fatalf("Failed to read snapshot: %v", err)
	}
	if !found {
		color.Yellow.Printf("No snapshot found at %s\n", config.SnapshotFilepath)
		return
	}

	color.Bold.Printf("Chat history (%d messages)\n", len(snap.Messages))
	history := tablewriter.NewWriter(os.Stdout)
	history.SetHeader([]string{"#", "At", "User", "Message"})
	for i, m := range snap.Messages {
		history.Append([]string{
			strconv.Itoa(i + 1),
			time.UnixMilli(m.Timestamp).UTC().Format(time.RFC822),
			m.Username,
			m.Text,
		})
	}
	history.Render()

	fmt.Println()
	color.Bold.Println("Messages per user")
	usernames := lo.Keys(snap.Counts)
	sort.Strings(usernames)

	stats := tablewriter.NewWriter(os.Stdout)
	stats.SetHeader([]string{"User", "Count"})
	for _, username := range usernames {
		stats.Append([]string{username, strconv.Itoa(snap.Counts[username])})
	}
	stats.Render()
}
