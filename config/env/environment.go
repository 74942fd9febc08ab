package env

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/coachlab/notification-service/pkg/helper"
	"github.com/joho/godotenv"
)

const (
	// DBEngineSQL use sql repositories
	DBEngineSQL = "sql"
	// DBEngineMongo use mongodb repositories
	DBEngineMongo = "mongo"
)

// Env model
type Env struct {
	ServiceName string
	// Env on application
	Environment       string
	LoadConfigTimeout time.Duration
	DebugMode         bool
	LogFile           string

	// UseREST env
	UseREST bool
	// UseKafkaConsumer env
	UseKafkaConsumer bool
	// UseRedisFanout env, cross instance live delivery with redis pub/sub
	UseRedisFanout bool

	HTTPRootPath string
	// HTTPPort config
	HTTPPort uint16

	// BasicAuthUsername config
	BasicAuthUsername string
	// BasicAuthPassword config
	BasicAuthPassword string
	// JWTSecret for validate HS256 bearer token
	JWTSecret string

	// JaegerTracingHost env
	JaegerTracingHost string

	// Broker environment
	Kafka struct {
		Brokers       []string
		ClientVersion string
		ClientID      string
		ConsumerGroup string
		DispatchTopic string
		UserTopic     string
	}

	// MaxGoroutines env for goroutine semaphore
	MaxGoroutines int

	// Database environment
	DBEngine                          string
	SQLDriverName                     string
	DbSQLWriteDSN, DbSQLReadDSN       string
	DbMongoWriteHost, DbMongoReadHost string
	DbMongoDatabaseName               string
	DbRedisReadDSN, DbRedisWriteDSN   string
	UserCacheTTL                      time.Duration

	// Web push environment
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string
	PushTTL         int
	PushRetries     int

	// Live channel environment
	LiveHeartbeatInterval   time.Duration
	LiveSendBuffer          int
	LiveSingleStreamPerUser bool

	// CORS Environment
	CORSAllowOrigins []string
}

var env Env

// BaseEnv get global basic environment
func BaseEnv() Env {
	return env
}

// SetEnv set env for mocking data env
func SetEnv(newEnv Env) {
	env = newEnv
}

// Load environment
func Load(serviceName string) {
	env.ServiceName = serviceName

	// load main .env
	if err := godotenv.Load(os.Getenv(helper.WORKDIR) + ".env"); err != nil {
		log.Printf("Warning: load env, %v", err)
	}

	if mErrs := Parse(&env); mErrs.HasError() {
		panic("Environment error: \n" + mErrs.Error())
	}
}

// Parse environment variables into target, aggregating every invalid value
func Parse(target *Env) helper.MultiError {
	var ok bool
	var err error
	mErrs := helper.NewMultiError()

	if target.LoadConfigTimeout, err = time.ParseDuration(os.Getenv("LOAD_CONFIG_TIMEOUT")); err != nil {
		target.LoadConfigTimeout = 10 * time.Second // default value
	}

	// ------------------------------------
	target.UseREST = parseBoolDefault("USE_REST", true)
	target.UseKafkaConsumer = helper.ParseBool(os.Getenv("USE_KAFKA_CONSUMER"))
	target.UseRedisFanout = helper.ParseBool(os.Getenv("USE_REDIS_FANOUT"))

	if target.UseREST {
		httpPort, err := strconv.Atoi(os.Getenv("HTTP_PORT"))
		if err != nil || httpPort <= 0 {
			mErrs.Append("HTTP_PORT", errors.New("missing or invalid value for HTTP_PORT environment"))
		}
		target.HTTPPort = uint16(httpPort)
	}

	// ------------------------------------
	target.Environment = os.Getenv("ENVIRONMENT")
	target.DebugMode = parseBoolDefault("DEBUG_MODE", true)
	target.LogFile = os.Getenv("LOG_FILE")
	target.HTTPRootPath = os.Getenv("HTTP_ROOT_PATH")

	target.BasicAuthUsername, ok = os.LookupEnv("BASIC_AUTH_USERNAME")
	if !ok {
		mErrs.Append("BASIC_AUTH_USERNAME", errors.New("missing BASIC_AUTH_USERNAME environment"))
	}
	target.BasicAuthPassword, ok = os.LookupEnv("BASIC_AUTH_PASS")
	if !ok {
		mErrs.Append("BASIC_AUTH_PASS", errors.New("missing BASIC_AUTH_PASS environment"))
	}
	target.JWTSecret, ok = os.LookupEnv("JWT_SECRET")
	if !ok || target.JWTSecret == "" {
		mErrs.Append("JWT_SECRET", errors.New("missing JWT_SECRET environment"))
	}

	target.JaegerTracingHost = os.Getenv("JAEGER_TRACING_HOST")

	// kafka environment
	parseBrokerEnv(target, mErrs)

	target.MaxGoroutines = helper.ParseInt(os.Getenv("MAX_GOROUTINES"), 10)
	if target.MaxGoroutines <= 0 {
		target.MaxGoroutines = 10
	}

	// Parse database environment
	parseDatabaseEnv(target, mErrs)

	// web push environment
	target.VAPIDPublicKey = os.Getenv("VAPID_PUBLIC_KEY")
	target.VAPIDPrivateKey = os.Getenv("VAPID_PRIVATE_KEY")
	target.VAPIDSubscriber = os.Getenv("VAPID_SUBSCRIBER")
	if (target.VAPIDPublicKey == "") != (target.VAPIDPrivateKey == "") {
		mErrs.Append("VAPID_PRIVATE_KEY", errors.New("VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY must be set together"))
	}
	target.PushTTL = helper.ParseInt(os.Getenv("PUSH_TTL"), 86400)
	target.PushRetries = helper.ParseInt(os.Getenv("PUSH_RETRIES"), 2)

	// live channel environment
	if target.LiveHeartbeatInterval, err = time.ParseDuration(os.Getenv("LIVE_HEARTBEAT_INTERVAL")); err != nil || target.LiveHeartbeatInterval <= 0 {
		target.LiveHeartbeatInterval = 30 * time.Second
	}
	target.LiveSendBuffer = helper.ParseInt(os.Getenv("LIVE_SEND_BUFFER"), 16)
	if target.LiveSendBuffer <= 0 {
		target.LiveSendBuffer = 16
	}
	target.LiveSingleStreamPerUser = helper.ParseBool(os.Getenv("LIVE_SINGLE_STREAM_PER_USER"))

	target.CORSAllowOrigins = helper.SplitTrim(os.Getenv("CORS_ALLOW_ORIGINS"), ",")
	if len(target.CORSAllowOrigins) == 0 {
		target.CORSAllowOrigins = []string{"*"}
	}

	return mErrs
}

func parseBrokerEnv(target *Env, mErrs helper.MultiError) {
	target.Kafka.Brokers = helper.SplitTrim(os.Getenv("KAFKA_BROKERS"), ",")
	target.Kafka.ClientID = os.Getenv("KAFKA_CLIENT_ID")
	target.Kafka.ClientVersion = os.Getenv("KAFKA_CLIENT_VERSION")
	target.Kafka.ConsumerGroup = os.Getenv("KAFKA_CONSUMER_GROUP")
	target.Kafka.DispatchTopic = os.Getenv("KAFKA_DISPATCH_TOPIC")
	if target.Kafka.DispatchTopic == "" {
		target.Kafka.DispatchTopic = "notification.dispatch"
	}
	target.Kafka.UserTopic = os.Getenv("KAFKA_USER_TOPIC")
	if target.Kafka.UserTopic == "" {
		target.Kafka.UserTopic = "user.updated"
	}

	if target.UseKafkaConsumer {
		if len(target.Kafka.Brokers) == 0 {
			mErrs.Append("KAFKA_BROKERS", errors.New("kafka consumer is active, missing KAFKA_BROKERS environment"))
		}
		if target.Kafka.ConsumerGroup == "" {
			mErrs.Append("KAFKA_CONSUMER_GROUP", errors.New("kafka consumer is active, missing KAFKA_CONSUMER_GROUP environment"))
		}
	}
}

func parseDatabaseEnv(target *Env, mErrs helper.MultiError) {
	target.DBEngine = strings.ToLower(os.Getenv("DB_ENGINE"))
	if target.DBEngine == "" {
		target.DBEngine = DBEngineSQL
	}

	switch target.DBEngine {
	case DBEngineSQL:
		target.SQLDriverName = os.Getenv("SQL_DRIVER_NAME")
		if target.SQLDriverName == "" {
			target.SQLDriverName = "postgres"
		}
		target.DbSQLWriteDSN = os.Getenv("SQL_DB_WRITE_DSN")
		target.DbSQLReadDSN = os.Getenv("SQL_DB_READ_DSN")
		if target.DbSQLWriteDSN == "" {
			mErrs.Append("SQL_DB_WRITE_DSN", errors.New("missing SQL_DB_WRITE_DSN environment"))
		}
		if target.DbSQLReadDSN == "" {
			target.DbSQLReadDSN = target.DbSQLWriteDSN
		}

	case DBEngineMongo:
		target.DbMongoWriteHost = os.Getenv("MONGODB_HOST_WRITE")
		target.DbMongoReadHost = os.Getenv("MONGODB_HOST_READ")
		target.DbMongoDatabaseName = os.Getenv("MONGODB_DATABASE_NAME")
		if target.DbMongoWriteHost == "" {
			mErrs.Append("MONGODB_HOST_WRITE", errors.New("missing MONGODB_HOST_WRITE environment"))
		}
		if target.DbMongoReadHost == "" {
			target.DbMongoReadHost = target.DbMongoWriteHost
		}
		if target.DbMongoDatabaseName == "" {
			mErrs.Append("MONGODB_DATABASE_NAME", errors.New("missing MONGODB_DATABASE_NAME environment"))
		}

	default:
		mErrs.Append("DB_ENGINE", errors.New("DB_ENGINE must be one of: sql, mongo"))
	}

	target.DbRedisWriteDSN = os.Getenv("REDIS_WRITE_DSN")
	target.DbRedisReadDSN = os.Getenv("REDIS_READ_DSN")
	if target.DbRedisReadDSN == "" {
		target.DbRedisReadDSN = target.DbRedisWriteDSN
	}
	if target.UseRedisFanout && target.DbRedisWriteDSN == "" {
		mErrs.Append("REDIS_WRITE_DSN", errors.New("redis fanout is active, missing REDIS_WRITE_DSN environment"))
	}

	var err error
	if target.UserCacheTTL, err = time.ParseDuration(os.Getenv("USER_CACHE_TTL")); err != nil {
		target.UserCacheTTL = time.Minute
	}
}

func parseBoolDefault(key string, defaultValue bool) bool {
	str, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	b, err := strconv.ParseBool(str)
	if err != nil {
		return defaultValue
	}
	return b
}
