// Package schema 生成配置文件的 JSON Schema，供编辑器补全与校验
package schema

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"

	"github.com/yeisme/jdoccov/pkg/configs"
)

// GenConfigSchema 生成 configs.Config 的 JSON Schema 并写入 out
// 字段名取 mapstructure 标签，与 viper 读取配置时使用的键一致
func GenConfigSchema(out io.Writer) error {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "mapstructure",
	}
	configSchema := reflector.Reflect(configs.Config{})
	configSchema.Title = "jdoccov configuration"
	schemaJSON, err := json.MarshalIndent(configSchema, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(schemaJSON))
	return err
}
