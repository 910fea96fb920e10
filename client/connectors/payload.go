package connectors

import (
	"encoding/json"
	"fmt"

	"employee-datahub/service/models"
)

// encodeEvent 将运行事件序列化为JSON
func encodeEvent(event *models.RunEvent) ([]byte, error) {
	if event == nil {
		return nil, fmt.Errorf("事件不能为空")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("序列化事件失败: %w", err)
	}
	return data, nil
}
