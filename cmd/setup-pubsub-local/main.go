package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"jokemeter/internal/config"
	"jokemeter/internal/logger"

	"cloud.google.com/go/pubsub"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const retention = 7 * 24 * time.Hour

// Provisions the usage event topic and a pull subscription on the local
// Pub/Sub emulator, so published events can be inspected.
func main() {
	reset := flag.Bool("reset", false, "delete every topic and subscription on the emulator first")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on system environment variables.")
	}

	// The API key is irrelevant here, so the config is read without Validate.
	var cfg config.Config
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	log := logger.New(cfg.Environment, cfg.LogLevel)

	projectID := cfg.GCPProjectIDLocal
	if projectID == "" {
		log.Fatal().Msg("GCP_PROJECT_ID_LOCAL is not set in the environment.")
	}
	if cfg.PubSubEmulatorHost == "" {
		log.Fatal().Msg("PUBSUB_EMULATOR_HOST must be set for local environment.")
	}
	if cfg.UsageEventsTopic == "" {
		log.Fatal().Msg("USAGE_EVENTS_TOPIC is not set in the environment.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := pubsub.NewClient(ctx, projectID,
		option.WithEndpoint(cfg.PubSubEmulatorHost),
		option.WithoutAuthentication(),
	)
	if err != nil {
		log.Fatal().Msgf("Failed to create Pub/Sub client: %v", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			log.Error().Msgf("Failed to close pubsub client: %v", err)
		}
	}()

	if *reset {
		resetLocalEmulator(ctx, client, log)
	}

	topic, err := createTopicIfNotExists(ctx, client, log, cfg.UsageEventsTopic)
	if err != nil {
		log.Fatal().Msgf("Failed to create topic %s: %v", cfg.UsageEventsTopic, err)
	}
	createSubscriptionIfNotExists(ctx, client, log, cfg.UsageEventsTopic+"-sub", topic)

	log.Info().Msg("Pub/Sub setup for local environment complete.")
}

// resetLocalEmulator deletes all topics and subscriptions. Emulator only.
func resetLocalEmulator(ctx context.Context, client *pubsub.Client, log zerolog.Logger) {
	subs := client.Subscriptions(ctx)
	for {
		sub, err := subs.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Fatal().Msgf("Failed to list subscriptions: %v", err)
		}
		log.Info().Msgf("Deleting subscription: %s", sub.ID())
		if err := sub.Delete(ctx); err != nil {
			log.Warn().Msgf("Failed to delete subscription %s: %v", sub.ID(), err)
		}
	}

	topics := client.Topics(ctx)
	for {
		topic, err := topics.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Fatal().Msgf("Failed to list topics: %v", err)
		}
		log.Info().Msgf("Deleting topic: %s", topic.ID())
		if err := topic.Delete(ctx); err != nil {
			log.Warn().Msgf("Failed to delete topic %s: %v", topic.ID(), err)
		}
	}
}

func createTopicIfNotExists(ctx context.Context, client *pubsub.Client, log zerolog.Logger, topicID string) (*pubsub.Topic, error) {
	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Info().Msgf("Topic %s already exists", topicID)
		return topic, nil
	}
	log.Info().Msgf("Creating topic: %s with %v retention", topicID, retention)
	return client.CreateTopicWithConfig(ctx, topicID, &pubsub.TopicConfig{RetentionDuration: retention})
}

func createSubscriptionIfNotExists(ctx context.Context, client *pubsub.Client, log zerolog.Logger, subID string, topic *pubsub.Topic) {
	sub := client.Subscription(subID)
	exists, err := sub.Exists(ctx)
	if err != nil {
		log.Fatal().Msgf("Failed to check if subscription %s exists: %v", subID, err)
	}
	if exists {
		log.Info().Msgf("Subscription %s already exists", subID)
		return
	}
	log.Info().Msgf("Creating pull subscription %s", subID)
	if _, err := client.CreateSubscription(ctx, subID, pubsub.SubscriptionConfig{
		Topic:            topic,
		AckDeadline:      60 * time.Second,
		ExpirationPolicy: 31 * 24 * time.Hour,
	}); err != nil {
		log.Fatal().Msgf("Failed to create subscription '%s': %v", subID, err)
	}
}
