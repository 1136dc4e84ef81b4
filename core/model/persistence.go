package model

import (
	"encoding/gob"
	"encoding/json"
	"io"
	"os"

	"github.com/YuminosukeSato/scitree/pkg/errors"
)

// SaveModel はモデルをgob形式でファイルに保存する
//
// 使用例:
//
//	t, _ := clf.Tree()
//	err := model.SaveModel(t, "model.gob")
func SaveModel(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()

	return SaveModelToWriter(model, file)
}

// LoadModel はgob形式のファイルからモデルを読み込む
//
// パラメータ:
//   - model: 読み込み先（ポインタ）
//   - filename: 読み込み元のファイルパス
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return LoadModelFromReader(model, file)
}

// SaveModelToWriter はモデルをgob形式でio.Writerに保存する
func SaveModelToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadModelFromReader はgob形式のio.Readerからモデルを読み込む
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}

// SaveJSON はモデルを人間が読めるJSON形式でファイルに保存する
func SaveJSON(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer file.Close()

	return WriteJSON(model, file)
}

// WriteJSON はモデルをインデント付きJSONとしてio.Writerに書き出す
func WriteJSON(model interface{}, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(model); err != nil {
		return errors.Wrap(err, "failed to encode model as JSON")
	}
	return nil
}

// LoadJSON はJSONファイルからモデルを読み込む
func LoadJSON(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	return ReadJSON(model, file)
}

// ReadJSON はio.ReaderからJSON形式のモデルを読み込む
func ReadJSON(model interface{}, r io.Reader) error {
	if err := json.NewDecoder(r).Decode(model); err != nil {
		return errors.Wrap(err, "failed to decode model JSON")
	}
	return nil
}
