package scene

// Minimal directional lighting, same uniform layout as a full shadow-mapped
// pipeline would use so the shader can be swapped without touching Go code.
const lightingVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;

uniform mat4 mvp;
uniform mat4 matNormal;

out vec3 fragNormal;
out vec2 fragTexCoord;
out vec4 fragColor;

void main()
{
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    fragNormal = normalize(vec3(matNormal*vec4(vertexNormal, 0.0)));
    gl_Position = mvp*vec4(vertexPosition, 1.0);
}
`

const lightingFS = `#version 330
in vec3 fragNormal;
in vec2 fragTexCoord;
in vec4 fragColor;

uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 lightDir;
uniform vec4 lightColor;
uniform vec4 ambient;

out vec4 finalColor;

void main()
{
    vec4 texel = texture(texture0, fragTexCoord);
    float ndl = max(dot(normalize(fragNormal), -lightDir), 0.0);
    vec4 lit = ambient + lightColor*ndl;
    finalColor = texel*colDiffuse*fragColor*vec4(lit.rgb, 1.0);
}
`
