package app

import (
	"os"
	"strconv"
	"strings"

	"github.com/jfk9w-go/flu"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// CollectConfig merges YAML inputs in order, expanding $VARS in each,
// and overlays environment variables starting with environPrefix
// (HOTPOSTS_REDDIT_TIMEOUT=5s becomes reddit.timeout: 5s).
func CollectConfig(environPrefix string, inputs ...flu.Input) (flu.Bytes, error) {
	global := make(map[string]interface{})
	for _, input := range inputs {
		config, err := readConfig(input)
		if err != nil {
			return nil, err
		}

		global = merge(global, config)
	}

	global = merge(global, environ(environPrefix))
	buf := new(flu.ByteBuffer)
	if err := flu.EncodeTo(flu.YAML(global), buf); err != nil {
		return nil, errors.Wrap(err, "encode global config")
	}

	return flu.Bytes(buf.Unmask().Bytes()), nil
}

func readConfig(input flu.Input) (map[string]interface{}, error) {
	buf := new(flu.ByteBuffer)
	if _, err := flu.Copy(input, buf); err != nil {
		return nil, errors.Wrapf(err, "read config %s", input)
	}

	config := make(map[string]interface{})
	data := flu.Bytes(os.ExpandEnv(buf.Unmask().String()))
	if err := flu.DecodeFrom(data, flu.YAML(&config)); err != nil {
		return nil, errors.Wrapf(err, "read expanded config %s", input)
	}

	return config, nil
}

func environ(prefix string) map[string]interface{} {
	m := make(map[string]interface{})
	for _, line := range os.Environ() {
		if !strings.HasPrefix(line, prefix) {
			continue
		}

		line = line[len(prefix):]
		equals := strings.Index(line, "=")
		if equals <= 0 {
			continue
		}

		key := line[:equals]
		path := strings.Split(strings.ToLower(key), "_")
		overlayEnvValue(m, path, key, parseEnvValue(line[equals+1:]))
	}

	return m
}

// overlayEnvValue walks path into m, creating intermediate objects as
// needed, and places value at the leaf. Existing scalars along the way
// are replaced with objects; an existing object at the leaf wins over
// the env var.
func overlayEnvValue(m map[string]interface{}, path []string, key string, value interface{}) {
	last := len(path) - 1
	for i, token := range path {
		if token == "" {
			return
		}

		if i == last {
			if _, ok := m[token].(map[string]interface{}); ok {
				logrus.Warnf("discarding env var %s due to type incompatibility", key)
				return
			}

			m[token] = value
			return
		}

		child, ok := m[token].(map[string]interface{})
		if !ok {
			if _, exists := m[token]; exists {
				logrus.Warnf("overriding parent as object for env var %s", key)
			}

			child = make(map[string]interface{})
			m[token] = child
		}

		m = child
	}
}

func parseEnvValue(value string) interface{} {
	if v, err := strconv.ParseInt(value, 10, 64); err == nil {
		return v
	}

	if v, err := strconv.ParseFloat(value, 64); err == nil {
		return v
	}

	if v, err := strconv.ParseBool(value); err == nil {
		return v
	}

	return value
}

func merge(dst, src map[string]interface{}) map[string]interface{} {
	for key, value := range src {
		existing, ok := dst[key]
		if !ok {
			dst[key] = value
			continue
		}

		dstObject, dstIsObject := existing.(map[string]interface{})
		srcObject, srcIsObject := value.(map[string]interface{})
		switch {
		case dstIsObject && srcIsObject:
			dst[key] = merge(dstObject, srcObject)
		case !dstIsObject && !srcIsObject:
			dst[key] = value
		default:
			logrus.Fatalf("configuration keys %s must have the same type", key)
		}
	}

	return dst
}
