package playvault

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// testNakamaModule is a test double for runtime.NakamaModule.
// Only implements the methods the vault service touches.
type testNakamaModule struct {
	runtime.NakamaModule

	mu            sync.Mutex
	storageData   map[string]string // collection:key:userID -> value
	files         map[string]string // path -> contents served by ReadFile
	failReads     int               // number of upcoming StorageRead calls to fail
	failWrites    int               // number of upcoming StorageWrite calls to fail
	writeCalls    int
	notifications []*runtime.NotificationSend
	notifyErr     error
}

func newTestNakama() *testNakamaModule {
	return &testNakamaModule{
		storageData: make(map[string]string),
	}
}

func formatStorageKey(collection, key, userID string) string {
	return collection + ":" + key + ":" + userID
}

func (n *testNakamaModule) StorageRead(ctx context.Context, reads []*runtime.StorageRead) ([]*api.StorageObject, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failReads > 0 {
		n.failReads--
		return nil, errors.New("storage unavailable")
	}
	result := make([]*api.StorageObject, 0, len(reads))
	for _, read := range reads {
		value, exists := n.storageData[formatStorageKey(read.Collection, read.Key, read.UserID)]
		if exists {
			result = append(result, &api.StorageObject{
				Collection:     read.Collection,
				Key:            read.Key,
				UserId:         read.UserID,
				Value:          value,
				Version:        "1",
				PermissionRead: 1,
				CreateTime:     timestamppb.Now(),
				UpdateTime:     timestamppb.Now(),
			})
		}
	}
	return result, nil
}

func (n *testNakamaModule) StorageWrite(ctx context.Context, writes []*runtime.StorageWrite) ([]*api.StorageObjectAck, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.writeCalls++
	if n.failWrites > 0 {
		n.failWrites--
		return nil, errors.New("storage unavailable")
	}
	result := make([]*api.StorageObjectAck, 0, len(writes))
	for _, write := range writes {
		n.storageData[formatStorageKey(write.Collection, write.Key, write.UserID)] = write.Value
		result = append(result, &api.StorageObjectAck{
			Collection: write.Collection,
			Key:        write.Key,
			UserId:     write.UserID,
			Version:    "1",
		})
	}
	return result, nil
}

func (n *testNakamaModule) NotificationsSend(ctx context.Context, notifications []*runtime.NotificationSend) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.notifyErr != nil {
		return n.notifyErr
	}
	n.notifications = append(n.notifications, notifications...)
	return nil
}

func (n *testNakamaModule) ReadFile(path string) (*os.File, error) {
	n.mu.Lock()
	content, ok := n.files[path]
	n.mu.Unlock()
	if !ok {
		return nil, errors.New("no such file: " + path)
	}
	file, err := os.CreateTemp("", "playvault-test-*")
	if err != nil {
		return nil, err
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return nil, err
	}
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, err
	}
	return file, nil
}

func (n *testNakamaModule) storedValue(collection, actorID string) (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	value, ok := n.storageData[formatStorageKey(collection, actorID, actorID)]
	return value, ok
}

func (n *testNakamaModule) corrupt(collection, actorID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.storageData[formatStorageKey(collection, actorID, actorID)] = "{not json"
}

// testGranter records physical-grant requests instead of sending them.
type testGranter struct {
	mu      sync.Mutex
	grants  []string // itemID per GrantInstance call, in order
	effects []string // itemID per ApplyEffect call, in order
	fail    bool
}

func (g *testGranter) GrantInstance(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID, itemID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.grants = append(g.grants, itemID)
	return !g.fail
}

func (g *testGranter) ApplyEffect(ctx context.Context, logger runtime.Logger, nk runtime.NakamaModule, actorID, itemID string, item *CatalogItem) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.effects = append(g.effects, itemID)
	return !g.fail
}

func (g *testGranter) granted() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.grants))
	copy(out, g.grants)
	return out
}

func testLogger() runtime.Logger {
	return NewZapLogger(zap.NewNop())
}

func testConfig() *Config {
	return &Config{
		MaxTransaction: 10_000,
		DailyReward:    100,
		SaveBackoffMs:  1,
		Items: map[string]*CatalogItem{
			"Sword":     {Price: 0, Category: ItemCategoryTool, Equippable: true},
			"Pistol":    {Price: 450, Category: ItemCategoryTool, Equippable: true},
			"Rifle":     {Price: 1200, Category: ItemCategoryTool, Equippable: true},
			"Torch":     {Price: 10, Category: ItemCategoryTool},
			"MedKit":    {Price: 75, Category: ItemCategoryConsumable, HealAmount: 50},
			"SpeedCola": {Price: 120, Category: ItemCategoryConsumable, BuffMultiplier: 1.5, BuffDurationSec: 30},
		},
	}
}

// newTestService wires a service against the doubles and returns the pieces
// tests poke at.
func newTestService() (*Service, *testNakamaModule, *testGranter, *LoggingSaveObserver) {
	nk := newTestNakama()
	granter := &testGranter{}
	observer := NewLoggingSaveObserver()
	s := NewService(testConfig(), granter, observer)
	s.nk = nk
	s.logger = testLogger()
	return s, nk, granter, observer
}
