// Package client provides commands that talk to a running talis server
package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/talis/internal/handlers/talis/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all remote commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running talis server",
	Long:  `Client commands make real gRPC requests against a talis server started with "talis serve".`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(rollCmd)
	ClientCmd.AddCommand(stateCmd)
	ClientCmd.AddCommand(configCmd)
	ClientCmd.AddCommand(clearHistoryCmd)
	ClientCmd.AddCommand(clearAllCmd)
}

// createClient creates a talis service client and its cleanup func
func createClient() (v1alpha1.TalisServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewTalisServiceClient(conn), cleanup, nil
}

type call func(ctx context.Context, client v1alpha1.TalisServiceClient, req *structpb.Struct) (*structpb.Struct, error)

// invoke sends fields through fn and prints the response as JSON
func invoke(cmd *cobra.Command, fields map[string]any, fn call) error {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	client, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := fn(ctx, client, req)
	if err != nil {
		return err
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
