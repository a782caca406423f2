package config

// DefaultValues is the default configuration
const DefaultValues = `
[Log]
Environment = "development"
Level = "debug"
Outputs = ["stderr"]

[StateDB]
Database = "postgres"
User = "bridge_user"
Password = "bridge_password"
Name = "bridge_db"
Host = "invarch-bridge-db"
Port = "5432"
MaxConns = 20
    [StateDB.Redis]
    IsClusterMode = false
    Addrs = ["localhost:6379"]
    DB = 0
    KeyPrefix = "invarch_bridge_"
    MockPrice = false

[Chain]
HomeURL = "ws://localhost:9944"
AssetHubURL = "ws://localhost:9945"
SignerSeed = "//Alice"
SS58Prefix = 117
FinalizationTimeout = "5m"

[BridgeController]
Rounding = "floor"

[AssetCache]
RefreshInterval = "5m"
MaxRetries = 3

[BridgeServer]
HTTPPort = "8080"
ReadTimeout = "10s"
OperationTTL = "1h"
IPBlockList = []

[MessagePushProducer]
Enabled = false
UseFakeProducer = true
Brokers = ["localhost:9092"]
Topic = "invarch_bridge_status"
PushKey = ""
DedupWindow = "5s"

[CoinKafkaConsumer]
Brokers = []
Topics = ["coin_price"]
ConsumerGroupID = "invarch-bridge-service"
InitialOffset = -1

[Metrics]
Enabled = false
Port = "9091"
Endpoint = "/metrics"
Env = "local"
`
