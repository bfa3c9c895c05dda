// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v2"
)

// toYAML - the JSON form of a value as YAML, field order kept
func toYAML(v interface{}) ([]byte, error) {
	j, err := json.Marshal(v)
	if nil != err {
		return nil, err
	}
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(j, &doc); nil != err {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// fromYAML - YAML text as JSON so the JSON decoders apply
func fromYAML(data []byte) ([]byte, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); nil != err {
		return nil, err
	}
	return json.Marshal(jsonValue(doc))
}

// YAML maps have untyped keys, JSON objects need strings
func jsonValue(v interface{}) interface{} {
	switch item := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(item))
		for k, value := range item {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprint(k)
			}
			m[key] = jsonValue(value)
		}
		return m
	case []interface{}:
		for i, value := range item {
			item[i] = jsonValue(value)
		}
		return item
	default:
		return v
	}
}
