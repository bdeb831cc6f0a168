package redis

const (
	keyPrefix = "files-manager/"

	// KeyPrefixSession is the key prefix for auth session tokens
	KeyPrefixSession = keyPrefix + "sessions/"
)
