package utils

import (
	"encoding/json"
	"os"
)

func JsonFileToStruct[T any](path string, out *T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func StructToJsonFile(path string, in any) error {
	data, err := json.MarshalIndent(in, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, os.ModePerm)
}
