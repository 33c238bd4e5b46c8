package repository

// maxInParams 单条 IN 列表的 ID 上限；PostgreSQL 单语句绑定参数不超过 65535
const maxInParams = 5000

// chunkIDs 按 size 切分 ID 列表，size <= 0 时按 maxInParams
func chunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = maxInParams
	}
	chunks := make([][]int64, 0, (len(ids)+size-1)/size)
	for len(ids) > size {
		chunks = append(chunks, ids[:size:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}
