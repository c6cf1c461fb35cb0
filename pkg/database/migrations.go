package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Migration struct {
	Version     int
	Description string
	Up          func(*mongo.Database) error
}

type Migrator struct {
	db         *mongo.Database
	migrations []Migration
}

func NewMigrator(db *mongo.Database) *Migrator {
	return &Migrator{
		db:         db,
		migrations: getMigrations(),
	}
}

func (m *Migrator) Up() error {
	err := m.createMigrationsCollection()
	if err != nil {
		return err
	}

	currentVersion, err := m.getCurrentVersion()
	if err != nil {
		return err
	}

	for _, migration := range m.migrations {
		if migration.Version > currentVersion {
			log.Printf("Running migration %d: %s", migration.Version, migration.Description)

			err := migration.Up(m.db)
			if err != nil {
				return fmt.Errorf("migration %d failed: %w", migration.Version, err)
			}

			err = m.updateVersion(migration.Version)
			if err != nil {
				return fmt.Errorf("failed to update migration version: %w", err)
			}
		}
	}

	return nil
}

func (m *Migrator) createMigrationsCollection() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collections, err := m.db.ListCollectionNames(ctx, bson.M{"name": "migrations"})
	if err != nil {
		return err
	}
	if len(collections) == 0 {
		return m.db.CreateCollection(ctx, "migrations")
	}
	return nil
}

func (m *Migrator) getCurrentVersion() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var result struct {
		Version int `bson:"version"`
	}
	opts := options.FindOne().SetSort(bson.M{"version": -1})
	err := m.db.Collection("migrations").FindOne(ctx, bson.M{}, opts).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return result.Version, nil
}

func (m *Migrator) updateVersion(version int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := m.db.Collection("migrations").InsertOne(ctx, bson.M{
		"version":    version,
		"applied_at": time.Now(),
	})
	return err
}

func getMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create campaign indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("campaigns").Indexes().CreateMany(ctx, []mongo.IndexModel{
					{Keys: bson.D{{Key: "creator_id", Value: 1}, {Key: "status", Value: 1}}},
					{Keys: bson.D{{Key: "is_public", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
				})
				return err
			},
		},
		{
			Version:     2,
			Description: "Create claim indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				// Duplicate admission is enforced by the submission transaction,
				// not by a unique index: uniqueness only applies to non-expired
				// claims, which a partial unique index cannot express here.
				_, err := db.Collection("claims").Indexes().CreateMany(ctx, []mongo.IndexModel{
					{Keys: bson.D{{Key: "campaign_id", Value: 1}, {Key: "email", Value: 1}}},
					{Keys: bson.D{{Key: "campaign_id", Value: 1}, {Key: "claim_number", Value: 1}}},
					{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
				})
				return err
			},
		},
		{
			Version:     3,
			Description: "Create user indexes",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true),
				})
				return err
			},
		},
		{
			Version:     4,
			Description: "Index users by billing customer id",
			Up: func(db *mongo.Database) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
					Keys:    bson.D{{Key: "stripe_customer_id", Value: 1}},
					Options: options.Index().SetSparse(true),
				})
				return err
			},
		},
	}
}
