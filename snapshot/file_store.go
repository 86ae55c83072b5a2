package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rushteam/shoprec/core"
)

// FileStore 把快照序列化到单个文件。
//
// 写入采用 write-to-temp-then-rename：并发训练互不协调（无锁），
// 最后写完者胜出；读取方在任何时刻都不会看到半写状态的快照。
type FileStore struct {
	// Path 快照文件路径，每个引擎实例一个
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Save 原子落盘：写临时文件后 rename 覆盖旧快照。
func (fs *FileStore) Save(s *Snapshot) error {
	if s == nil {
		return core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeInvalidInput, "snapshot is nil")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeInternalError, "snapshot: encode: "+err.Error())
	}

	dir := filepath.Dir(fs.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// 临时文件必须与目标同目录，rename 才是原子的
	tmp, err := os.CreateTemp(dir, filepath.Base(fs.Path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, fs.Path)
}

// Load 读取并校验快照。
//
// 文件缺失返回 NOT_FOUND，内容损坏/版本不符/引擎名不符返回 CORRUPT；
// 两种情况引擎都按未训练状态处理（打分走热门兜底）。
// expectEngine 非空时校验快照归属，防止 basic / hybrid 快照交叉加载。
func (fs *FileStore) Load(expectEngine string) (*Snapshot, error) {
	data, err := os.ReadFile(fs.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeNotFound, "snapshot: file not found: "+fs.Path)
		}
		return nil, err
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeCorrupt, "snapshot: decode: "+err.Error())
	}
	if s.Version != Version {
		return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeCorrupt, "snapshot: unsupported version")
	}
	if expectEngine != "" && s.Engine != expectEngine {
		return nil, core.NewDomainError(core.ModuleSnapshot, core.ErrorCodeCorrupt, "snapshot: engine mismatch: "+s.Engine)
	}
	return &s, nil
}
