package store

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Rishab2245/public-chat-backend/internal/models"
)

const messagesCollection = "messages"

// MongoStore handles MongoDB message persistence.
type MongoStore struct {
	client   *mongo.Client
	messages *mongo.Collection
}

// messageDoc is the BSON shape of a message. The ID is converted to its hex
// form at the store boundary so callers only ever see string IDs.
type messageDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	SenderID       string             `bson:"senderId"`
	Content        string             `bson:"content"`
	ConversationID string             `bson:"conversationId"`
	Timestamp      time.Time          `bson:"timestamp"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      *time.Time         `bson:"updatedAt,omitempty"`
}

func (d *messageDoc) toModel() models.Message {
	return models.Message{
		ID:             d.ID.Hex(),
		SenderID:       d.SenderID,
		Content:        d.Content,
		ConversationID: d.ConversationID,
		Timestamp:      d.Timestamp,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
// The database name is taken from the connection string path, falling back to
// "chat" when the URI carries none.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	dbName := databaseFromURI(uri)

	return &MongoStore{
		client:   client,
		messages: client.Database(dbName).Collection(messagesCollection),
	}, nil
}

// databaseFromURI extracts the database name from a Mongo connection string,
// defaulting to "chat" when the URI names none.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "chat"
	}
	if name := strings.TrimPrefix(u.Path, "/"); name != "" {
		return name
	}
	return "chat"
}

// Close disconnects the underlying client.
func (s *MongoStore) Close() {
	_ = s.client.Disconnect(context.Background())
}

// Ping checks the database connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// List returns all messages sorted ascending by timestamp.
func (s *MongoStore) List(ctx context.Context) ([]models.Message, error) {
	cursor, err := s.messages.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []models.Message{}
	for cursor.Next(ctx) {
		var doc messageDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		messages = append(messages, doc.toModel())
	}
	return messages, cursor.Err()
}

// Create inserts the message, letting MongoDB assign the ObjectID. The stored
// ID, timestamp, and conversation default are written back into msg.
func (s *MongoStore) Create(ctx context.Context, msg *models.Message) error {
	now := time.Now().UTC()
	doc := messageDoc{
		SenderID:       msg.SenderID,
		Content:        msg.Content,
		ConversationID: msg.ConversationID,
		Timestamp:      now,
		CreatedAt:      now,
	}
	if doc.ConversationID == "" {
		doc.ConversationID = models.DefaultConversation
	}

	res, err := s.messages.InsertOne(ctx, doc)
	if err != nil {
		return err
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("store: unexpected inserted ID type")
	}
	doc.ID = oid
	*msg = doc.toModel()
	return nil
}

// UpdateContent replaces the content of the message with the given ID and
// stamps updatedAt. It reports false when no message matches.
func (s *MongoStore) UpdateContent(ctx context.Context, id, content string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not a Mongo ID, so it cannot name a stored message.
		return false, nil
	}

	now := time.Now().UTC()
	res, err := s.messages.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"content": content, "updatedAt": now}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// Delete removes the message with the given ID, reporting false when no
// message matches.
func (s *MongoStore) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := s.messages.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
